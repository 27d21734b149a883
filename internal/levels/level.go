// Package levels provides the Chicago Loop level catalog: the built-in
// boards and loading of custom levels from YAML files.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	"fmt"

	"github.com/vovakirdan/chicago-loop/internal/engine"
)

// Level is a complete puzzle definition.
type Level struct {
	ID          string
	Name        string
	Description string
	Item        string // What the agent is carrying through the level
	Order       int    // Position in the campaign; lower plays first
	Board       engine.Board
	Start       engine.Coord
	Goal        engine.Coord
	Solution    *Solution
	FilePath    string // Empty for built-in levels
}

// Solution is a known seed pattern and rule set that is worth trying on a level.
type Solution struct {
	Pattern engine.SeedPattern
	Rules   engine.RuleSet
}

// BuiltIn reports whether the level ships with the binary.
func (l Level) BuiltIn() bool {
	return l.FilePath == ""
}

// Validate checks that the level can be seeded, including its solution.
func (l Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("levels: level has no id")
	}

	e := engine.New(engine.DefaultConfig())
	if err := e.Seed(l.Board, engine.ConwayRules(), engine.NewSeedPattern(engine.DefaultSeedSize), l.Start, l.Goal); err != nil {
		return fmt.Errorf("levels: %s: %w", l.ID, err)
	}

	if l.Solution != nil {
		if err := e.Seed(l.Board, l.Solution.Rules, l.Solution.Pattern, l.Start, l.Goal); err != nil {
			return fmt.Errorf("levels: %s solution: %w", l.ID, err)
		}
	}
	return nil
}

// Simulate runs the level with the given seed and rules.
func (l Level) Simulate(pattern engine.SeedPattern, rules engine.RuleSet, cfg engine.Config) (engine.Report, error) {
	return engine.Simulate(l.Board, rules, pattern, l.Start, l.Goal, cfg)
}
