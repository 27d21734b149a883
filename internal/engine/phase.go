package engine

// Phase is the lifecycle state of a puzzle session.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhaseSetup
	PhaseRunning
	PhaseWon
	PhaseLost
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// transitions lists the legal next phases for every phase.
var transitions = map[Phase][]Phase{
	PhaseMenu:    {PhaseSetup},
	PhaseSetup:   {PhaseMenu, PhaseRunning},
	PhaseRunning: {PhaseSetup, PhaseWon, PhaseLost},
	PhaseWon:     {PhaseMenu, PhaseSetup, PhaseRunning},
	PhaseLost:    {PhaseMenu, PhaseSetup, PhaseRunning},
}

// CanTransition reports whether moving from one phase to another is legal.
func CanTransition(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PhaseFor maps a tick outcome to the phase it leaves the session in.
func PhaseFor(o Outcome) Phase {
	switch o {
	case Won:
		return PhaseWon
	case LostExtinction, LostTimeout:
		return PhaseLost
	default:
		return PhaseRunning
	}
}
