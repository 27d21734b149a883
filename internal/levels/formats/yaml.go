// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/chicago-loop/internal/engine"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
// The json tags describe the same document for Schema.
type YAMLLevel struct {
	ID          string        `yaml:"id" json:"id"`
	Name        string        `yaml:"name" json:"name,omitempty"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Item        string        `yaml:"item,omitempty" json:"item,omitempty"`
	Order       int           `yaml:"order,omitempty" json:"order,omitempty"`
	Board       []string      `yaml:"board" json:"board"`
	Start       YAMLCoord     `yaml:"start" json:"start"`
	Goal        YAMLCoord     `yaml:"goal" json:"goal"`
	Solution    *YAMLSolution `yaml:"solution,omitempty" json:"solution,omitempty"`
}

// YAMLCoord is a board position.
type YAMLCoord struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// YAMLSolution is an optional known-good setup.
type YAMLSolution struct {
	Seed  []string `yaml:"seed" json:"seed"`
	Rules string   `yaml:"rules" json:"rules"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID          string
	Name        string
	Description string
	Item        string
	Order       int
	Board       engine.Board
	Start       engine.Coord
	Goal        engine.Coord

	HasSolution  bool
	SolutionSeed engine.SeedPattern
	SolutionRule engine.RuleSet
}

// DefaultOrder places custom levels after the built-in campaign.
const DefaultOrder = 100

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}

	board, err := engine.ParseBoard(yl.Board)
	if err != nil {
		return Level{}, fmt.Errorf("board: %w", err)
	}

	order := yl.Order
	if order <= 0 {
		order = DefaultOrder
	}
	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	level := Level{
		ID:          yl.ID,
		Name:        name,
		Description: yl.Description,
		Item:        yl.Item,
		Order:       order,
		Board:       board,
		Start:       engine.C(yl.Start.X, yl.Start.Y),
		Goal:        engine.C(yl.Goal.X, yl.Goal.Y),
	}

	if yl.Solution != nil {
		seed, err := engine.ParseSeedPattern(yl.Solution.Seed)
		if err != nil {
			return Level{}, fmt.Errorf("solution seed: %w", err)
		}
		rules, err := engine.ParseRuleSet(yl.Solution.Rules)
		if err != nil {
			return Level{}, fmt.Errorf("solution rules: %w", err)
		}
		level.HasSolution = true
		level.SolutionSeed = seed
		level.SolutionRule = rules
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
