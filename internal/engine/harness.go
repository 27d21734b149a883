package engine

// Report summarizes a complete run. Its JSON shape is the one external
// artifact of the engine and must stay stable.
type Report struct {
	Success            bool    `json:"success"`
	TickCount          int     `json:"tickCount"`
	FinalAgentPosition Coord   `json:"finalAgentPosition"`
	PositionHistory    []Coord `json:"positionHistory"`
	Outcome            string  `json:"outcome"`
}

// Simulate seeds a fresh engine and steps it until a terminal outcome.
// PositionHistory starts with the start position and gains one entry per
// tick.
func Simulate(board Board, rules RuleSet, pattern SeedPattern, start, goal Coord, cfg Config) (Report, error) {
	e := New(cfg)
	if err := e.Seed(board, rules, pattern, start, goal); err != nil {
		return Report{}, err
	}
	return Run(e, nil)
}

// Run steps an already seeded engine to completion, calling observe (if
// non-nil) after every tick.
func Run(e *Engine, observe func(TickResult)) (Report, error) {
	return Observe(e, func(res TickResult) error {
		if observe != nil {
			observe(res)
		}
		return nil
	})
}

// Observe is Run with an observer that can abort the run. The first
// non-nil error returned by observe stops stepping and is returned as is.
func Observe(e *Engine, observe func(TickResult) error) (Report, error) {
	report := Report{
		PositionHistory: []Coord{e.Agent()},
	}
	for {
		res, err := e.Step()
		if err != nil {
			return Report{}, err
		}
		report.PositionHistory = append(report.PositionHistory, res.Agent)
		if err := observe(res); err != nil {
			return Report{}, err
		}
		if res.Outcome.Terminal() {
			report.Success = res.Outcome == Won
			report.TickCount = res.Tick
			report.FinalAgentPosition = res.Agent
			report.Outcome = res.Outcome.String()
			return report, nil
		}
	}
}
