// Package game implements the playable Chicago Loop session: level menu,
// seed and rule editing, timed runs and result screens.
// It contains no terminal code; the platform layer feeds it input frames
// and displays its screen buffer.
package game

import (
	"fmt"

	"github.com/vovakirdan/chicago-loop/internal/core"
	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/levels"
)

// Options configures a new session.
type Options struct {
	Engine   engine.Config
	SeedSize int
	Player   string // Recorded with every finished run
}

// DefaultOptions returns the standard session options.
func DefaultOptions() Options {
	return Options{
		Engine:   engine.DefaultConfig(),
		SeedSize: engine.DefaultSeedSize,
		Player:   "local",
	}
}

// RunRecord describes a finished run, ready to be persisted.
type RunRecord struct {
	LevelID     string
	Outcome     engine.Outcome
	Generations int
	Rules       string
	Seed        string
	Final       engine.Coord
	Player      string
}

// Game is one player's session.
type Game struct {
	opts    Options
	catalog []levels.Level
	eng     *engine.Engine

	phase      engine.Phase
	menuIndex  int
	levelIndex int

	pattern  engine.SeedPattern
	rules    engine.RuleSet
	ruleKind engine.RuleKind
	cursor   engine.Coord

	trail        []engine.Coord
	frame        int
	framesPerGen int
	message      string
	solved       map[string]bool
	finished     *RunRecord
	campaignDone bool

	screenW int
	screenH int
	quit    bool
}

// New creates a session over the given level catalog.
func New(catalog []levels.Level, opts Options) *Game {
	if opts.SeedSize <= 0 {
		opts.SeedSize = engine.DefaultSeedSize
	}
	if opts.Player == "" {
		opts.Player = "local"
	}

	g := &Game{
		opts:    opts,
		catalog: catalog,
		eng:     engine.New(opts.Engine),
		solved:  make(map[string]bool),
	}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the game identifier used for storage and logs.
func (g *Game) ID() string {
	return "chicago-loop"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Chicago Loop"
}

// Reset returns the session to the level menu.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.framesPerGen = cfg.FramesPerGeneration()
	g.phase = engine.PhaseMenu
	g.menuIndex = 0
	g.levelIndex = 0
	g.quit = false
	g.finished = nil
	g.campaignDone = false
	g.resetSetup()
}

// Resize updates the screen dimensions without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// SelectLevel jumps straight into setup for the level with the given ID.
func (g *Game) SelectLevel(id string) error {
	for i, l := range g.catalog {
		if l.ID == id {
			if g.phase == engine.PhaseRunning {
				g.eng.Stop()
			}
			// Selecting a level restarts the session from the menu.
			g.phase = engine.PhaseMenu
			g.menuIndex = i
			g.levelIndex = i
			g.enterLevel()
			return nil
		}
	}
	return fmt.Errorf("game: unknown level %q", id)
}

// Phase returns the current session phase.
func (g *Game) Phase() engine.Phase {
	return g.phase
}

// Level returns the level being played or selected.
func (g *Game) Level() (levels.Level, bool) {
	if len(g.catalog) == 0 {
		return levels.Level{}, false
	}
	return g.catalog[g.levelIndex], true
}

// Pattern returns a copy of the seed being edited.
func (g *Game) Pattern() engine.SeedPattern {
	return g.pattern.Clone()
}

// Rules returns the rule set being edited.
func (g *Game) Rules() engine.RuleSet {
	return g.rules
}

// RuleKind returns the rule set that digit keys currently edit.
func (g *Game) RuleKind() engine.RuleKind {
	return g.ruleKind
}

// Cursor returns the seed editor cursor.
func (g *Game) Cursor() engine.Coord {
	return g.cursor
}

// Message returns the current status line.
func (g *Game) Message() string {
	return g.message
}

// Engine exposes the underlying engine for read-only inspection.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// State returns a summary of the session.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Phase:      g.phase.String(),
		Generation: g.eng.Tick(),
		Quit:       g.quit,
	}
	if l, ok := g.Level(); ok && g.phase != engine.PhaseMenu {
		st.LevelID = l.ID
	}
	if g.phase == engine.PhaseWon || g.phase == engine.PhaseLost {
		st.Outcome = g.eng.Outcome().String()
	}
	return st
}

// RunFinished returns the record of the last finished run exactly once.
func (g *Game) RunFinished() (RunRecord, bool) {
	if g.finished == nil {
		return RunRecord{}, false
	}
	rec := *g.finished
	g.finished = nil
	return rec, true
}

// Step processes one frame of input and advances a running simulation
// every framesPerGen frames.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		g.quit = true
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case engine.PhaseMenu:
		g.stepMenu(in)
	case engine.PhaseSetup:
		g.stepSetup(in)
	case engine.PhaseRunning:
		g.stepRunning(in)
	case engine.PhaseWon, engine.PhaseLost:
		g.stepResult(in)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) stepMenu(in core.InputFrame) {
	if len(g.catalog) == 0 {
		return
	}
	switch {
	case in.Has(core.ActionUp):
		g.menuIndex = core.Wrap(g.menuIndex-1, len(g.catalog))
	case in.Has(core.ActionDown):
		g.menuIndex = core.Wrap(g.menuIndex+1, len(g.catalog))
	case in.Has(core.ActionConfirm):
		g.levelIndex = g.menuIndex
		g.enterLevel()
	}
}

func (g *Game) stepSetup(in core.InputFrame) {
	last := g.opts.SeedSize - 1
	switch {
	case in.Has(core.ActionBack):
		g.transition(engine.PhaseMenu)
		g.menuIndex = g.levelIndex
		return
	case in.Has(core.ActionConfirm):
		g.startRun()
		return
	case in.Has(core.ActionUp):
		g.cursor.Y = core.Clamp(g.cursor.Y-1, 0, last)
	case in.Has(core.ActionDown):
		g.cursor.Y = core.Clamp(g.cursor.Y+1, 0, last)
	case in.Has(core.ActionLeft):
		g.cursor.X = core.Clamp(g.cursor.X-1, 0, last)
	case in.Has(core.ActionRight):
		g.cursor.X = core.Clamp(g.cursor.X+1, 0, last)
	case in.Has(core.ActionToggle):
		g.pattern.Toggle(g.cursor.X, g.cursor.Y)
		g.message = ""
	case in.Has(core.ActionCycle):
		g.ruleKind = g.ruleKind.Other()
	case in.Has(core.ActionReset):
		g.resetSetup()
		g.message = "Seed cleared, rules reset to " + g.rules.String()
	case in.Has(core.ActionSolution):
		g.loadSolution()
	}

	if d, ok := in.Digit(); ok {
		g.toggleRule(d)
	}
}

func (g *Game) stepRunning(in core.InputFrame) {
	if in.Has(core.ActionToggle) || in.Has(core.ActionBack) {
		g.stop()
		return
	}

	g.frame++
	if g.frame < g.framesPerGen {
		return
	}
	g.frame = 0
	g.advance()
}

func (g *Game) stepResult(in core.InputFrame) {
	switch {
	case in.Has(core.ActionBack):
		g.transition(engine.PhaseMenu)
		g.menuIndex = g.levelIndex
	case in.Has(core.ActionReset):
		g.startRun()
	case in.Has(core.ActionConfirm):
		if g.phase == engine.PhaseLost {
			g.message = ""
			g.transition(engine.PhaseSetup)
			return
		}
		if g.levelIndex+1 < len(g.catalog) {
			g.levelIndex++
			g.menuIndex = g.levelIndex
			g.enterLevel()
			return
		}
		g.transition(engine.PhaseMenu)
		g.menuIndex = 0
	}
}

// transition moves to the next phase when the move is legal.
func (g *Game) transition(to engine.Phase) bool {
	if !engine.CanTransition(g.phase, to) {
		return false
	}
	g.phase = to
	return true
}

// enterLevel opens setup for the current level with a blank seed and
// the default rules.
func (g *Game) enterLevel() {
	if !g.transition(engine.PhaseSetup) {
		return
	}
	g.resetSetup()
}

func (g *Game) resetSetup() {
	g.pattern = engine.NewSeedPattern(g.opts.SeedSize)
	g.rules = engine.ConwayRules()
	g.ruleKind = engine.RuleBirth
	g.cursor = engine.C(g.opts.SeedSize/2, g.opts.SeedSize/2)
	g.trail = nil
	g.frame = 0
	g.message = ""
}

func (g *Game) toggleRule(d int) {
	if d > engine.MaxNeighbors {
		g.message = fmt.Sprintf("%d is not a neighbor count (0-%d)", d, engine.MaxNeighbors)
		return
	}
	if g.rules.Toggle(g.ruleKind, d) {
		g.message = ""
		return
	}
	g.message = fmt.Sprintf("%d is already a %s value", d, g.ruleKind.Other())
}

func (g *Game) loadSolution() {
	l, ok := g.Level()
	if !ok || l.Solution == nil {
		g.message = "No known solution for this level"
		return
	}
	if l.Solution.Pattern.Size() != g.opts.SeedSize {
		g.message = fmt.Sprintf("Solution uses a %dx%d seed", l.Solution.Pattern.Size(), l.Solution.Pattern.Size())
		return
	}
	g.pattern = l.Solution.Pattern.Clone()
	g.rules = l.Solution.Rules
	g.message = "Loaded solution " + g.rules.String()
}

func (g *Game) startRun() {
	l, ok := g.Level()
	if !ok {
		return
	}
	if !engine.CanTransition(g.phase, engine.PhaseRunning) {
		return
	}
	if err := g.eng.Seed(l.Board, g.rules, g.pattern, l.Start, l.Goal); err != nil {
		g.message = err.Error()
		return
	}
	g.transition(engine.PhaseRunning)
	g.trail = []engine.Coord{g.eng.Agent()}
	g.frame = 0
	g.message = ""
}

func (g *Game) stop() {
	g.eng.Stop()
	g.transition(engine.PhaseSetup)
	g.message = fmt.Sprintf("Stopped at generation %d", g.eng.Tick())
}

// advance runs one generation and handles the end of the run.
func (g *Game) advance() {
	res, err := g.eng.Step()
	if err != nil {
		g.message = err.Error()
		g.transition(engine.PhaseSetup)
		return
	}
	g.trail = append(g.trail, res.Agent)

	if !res.Outcome.Terminal() {
		return
	}

	l, _ := g.Level()
	g.transition(engine.PhaseFor(res.Outcome))
	g.finished = &RunRecord{
		LevelID:     l.ID,
		Outcome:     res.Outcome,
		Generations: res.Tick,
		Rules:       g.rules.String(),
		Seed:        g.pattern.String(),
		Final:       res.Agent,
		Player:      g.opts.Player,
	}

	if res.Outcome == engine.Won {
		g.solved[l.ID] = true
		g.campaignDone = g.levelIndex == len(g.catalog)-1
	}
}

// Solved reports whether the level was won during this session.
func (g *Game) Solved(id string) bool {
	return g.solved[id]
}
