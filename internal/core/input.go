package core

// Action represents a semantic action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // Up arrow, K - move cursor or menu selection
	ActionDown            // Down arrow, J
	ActionLeft            // Left arrow, H
	ActionRight           // Right arrow, L
	ActionToggle          // Space - toggle seed cell, stop a run
	ActionCycle           // Tab - switch between birth and survive
	ActionConfirm         // Enter - start level or run
	ActionBack            // Escape, B - back to menu
	ActionReset           // R - reset seed and rules
	ActionSolution        // S - load the level's known solution
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionToggle:
		return "Toggle"
	case ActionCycle:
		return "Cycle"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionReset:
		return "Reset"
	case ActionSolution:
		return "Solution"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input collected during one frame.
// The zero value is an empty frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	digit int // Last digit pressed plus one; 0 means none
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetDigit records a digit key press. Values outside 0-9 are ignored.
func (f *InputFrame) SetDigit(d int) {
	if d < 0 || d > 9 {
		return
	}
	f.digit = d + 1
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Digit returns the digit pressed this frame, if any.
func (f InputFrame) Digit() (int, bool) {
	if f.digit == 0 {
		return 0, false
	}
	return f.digit - 1, true
}

// Empty reports whether nothing was pressed this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.digit == 0
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.digit = 0
}
