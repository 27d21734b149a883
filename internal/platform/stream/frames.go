package stream

import (
	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/levels"
)

// Frame types
const (
	FrameStart  = "start"
	FrameTick   = "tick"
	FrameReport = "report"
)

// Frame is one websocket message. Fields not relevant to Type are omitted.
type Frame struct {
	Type    string         `json:"type"`
	Level   string         `json:"level,omitempty"`
	Board   []string       `json:"board,omitempty"`
	Start   *engine.Coord  `json:"start,omitempty"`
	Goal    *engine.Coord  `json:"goal,omitempty"`
	Rules   string         `json:"rules,omitempty"`
	Seed    []string       `json:"seed,omitempty"`
	Max     int            `json:"maxGenerations,omitempty"`
	Tick    int            `json:"tick"`
	Agent   *engine.Coord  `json:"agent,omitempty"`
	Outcome string         `json:"outcome,omitempty"`
	Cells   []engine.Coord `json:"cells,omitempty"`
	Report  *engine.Report `json:"report,omitempty"`
}

// StartFrame describes the level and the seeded grid before the first generation.
func StartFrame(req RunRequest, e *engine.Engine) Frame {
	start, goal, agent := e.Start(), e.Goal(), e.Agent()
	return Frame{
		Type:  FrameStart,
		Level: req.Level.ID,
		Board: req.Level.Board.Rows(),
		Start: &start,
		Goal:  &goal,
		Rules: req.Rules.String(),
		Seed:  req.Pattern.Rows(),
		Max:   req.Engine.MaxGenerations,
		Agent: &agent,
		Cells: e.Grid().ActiveCoords(),
	}
}

// TickFrame reports one generation.
func TickFrame(res engine.TickResult) Frame {
	agent := res.Agent
	return Frame{
		Type:    FrameTick,
		Tick:    res.Tick,
		Agent:   &agent,
		Outcome: res.Outcome.String(),
		Cells:   res.Grid.ActiveCoords(),
	}
}

// ReportFrame closes a run.
func ReportFrame(r engine.Report) Frame {
	return Frame{
		Type:    FrameReport,
		Tick:    r.TickCount,
		Outcome: r.Outcome,
		Report:  &r,
	}
}

// LevelInfo is the /levels representation of a level.
type LevelInfo struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Item        string       `json:"item"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Board       []string     `json:"board"`
	Start       engine.Coord `json:"start"`
	Goal        engine.Coord `json:"goal"`
	HasSolution bool         `json:"hasSolution"`
	BuiltIn     bool         `json:"builtIn"`
}

// NewLevelInfo converts a level for the wire.
func NewLevelInfo(l levels.Level) LevelInfo {
	return LevelInfo{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Item:        l.Item,
		Width:       l.Board.Width(),
		Height:      l.Board.Height(),
		Board:       l.Board.Rows(),
		Start:       l.Start,
		Goal:        l.Goal,
		HasSolution: l.Solution != nil,
		BuiltIn:     l.BuiltIn(),
	}
}
