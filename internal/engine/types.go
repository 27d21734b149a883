// Package engine implements the Chicago Loop automaton puzzle: a bounded
// Life-like cellular automaton advanced in lockstep with an agent that is
// pushed around by the live cells next to it.
//
// The package is UI-agnostic, performs no I/O and contains no randomness.
// Given the same board, rules, seed pattern, start and goal, every run
// produces the same trajectory.
package engine

import "fmt"

// Tile is the static classification of a board cell.
type Tile uint8

const (
	TileOpen Tile = iota
	TileWall
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileOpen:
		return "open"
	case TileWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Coord is an integer cell coordinate.
// X increases to the right, Y increases downward.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Outcome is the verdict of a single tick.
type Outcome uint8

const (
	Continuing Outcome = iota
	Won
	LostExtinction
	LostTimeout
)

// String returns a stable lowercase name, used in reports and storage.
func (o Outcome) String() string {
	switch o {
	case Continuing:
		return "continuing"
	case Won:
		return "won"
	case LostExtinction:
		return "extinction"
	case LostTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run is over.
func (o Outcome) Terminal() bool {
	return o != Continuing
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, bool) {
	switch s {
	case "continuing":
		return Continuing, true
	case "won":
		return Won, true
	case "extinction":
		return LostExtinction, true
	case "timeout":
		return LostTimeout, true
	}
	return Continuing, false
}

// Sensing selects which grid the agent inspects when it moves.
type Sensing uint8

const (
	// SensePrevious reads the grid the neighbor counts were taken from.
	SensePrevious Sensing = iota
	// SenseNext reads the grid produced by the transition.
	SenseNext
)

// String returns the config spelling of the sensing mode.
func (s Sensing) String() string {
	switch s {
	case SensePrevious:
		return "previous"
	case SenseNext:
		return "next"
	default:
		return "unknown"
	}
}

// ParseSensing parses "previous" or "next". The empty string is SensePrevious.
func ParseSensing(s string) (Sensing, error) {
	switch s {
	case "", "previous", "pre":
		return SensePrevious, nil
	case "next", "post":
		return SenseNext, nil
	}
	return SensePrevious, fmt.Errorf("engine: unknown sensing mode %q", s)
}

// Config holds the per-run limits of an Engine.
type Config struct {
	MaxGenerations int     // Tick at which an unfinished run is lost
	Sensing        Sensing // Grid used for agent repulsion
}

// DefaultConfig returns the standard limits: 100 generations, previous-grid sensing.
func DefaultConfig() Config {
	return Config{
		MaxGenerations: 100,
		Sensing:        SensePrevious,
	}
}

// TickResult is returned by Engine.Step.
type TickResult struct {
	Grid    CellGrid
	Agent   Coord
	Tick    int
	Outcome Outcome
}
