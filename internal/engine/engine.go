package engine

// Engine advances a bounded Life-like automaton together with an agent that
// is repelled by live cells around it.
//
// An Engine is not safe for concurrent use. Callers drive it by invoking
// Step once per generation; stopping a run is simply not calling Step again.
type Engine struct {
	cfg   Config
	phase Phase

	board   Board
	rules   RuleSet
	pattern SeedPattern
	grid    CellGrid

	start Coord
	agent Coord
	goal  Coord
	tick  int

	outcome Outcome
}

// New creates an idle engine. Zero or negative limits fall back to defaults.
func New(cfg Config) *Engine {
	if cfg.MaxGenerations <= 0 {
		cfg.MaxGenerations = DefaultConfig().MaxGenerations
	}
	return &Engine{cfg: cfg, phase: PhaseSetup}
}

// Config returns the engine limits.
func (e *Engine) Config() Config { return e.cfg }

// Seed validates the run inputs, stamps the pattern onto the board centered
// on start and enters the running phase. Any run in progress is discarded.
func (e *Engine) Seed(board Board, rules RuleSet, pattern SeedPattern, start, goal Coord) error {
	if err := validateSeed(e.cfg, board, rules, pattern, start, goal); err != nil {
		return err
	}

	e.board = board
	e.rules = rules
	e.pattern = pattern.Clone()
	e.start = start
	e.goal = goal
	e.agent = start
	e.tick = 0
	e.outcome = Continuing
	e.grid = pattern.Stamp(board, start)
	e.phase = PhaseRunning
	return nil
}

func validateSeed(cfg Config, board Board, rules RuleSet, pattern SeedPattern, start, goal Coord) error {
	if cfg.MaxGenerations <= 0 {
		return configErr(CodeBadLimit, "max generations must be positive, got %d", cfg.MaxGenerations)
	}
	if board.Width() <= 0 || board.Height() <= 0 {
		return configErr(CodeBadBoard, "board dimensions %dx%d must be positive", board.Width(), board.Height())
	}
	if pattern.Size() <= 0 {
		return configErr(CodeBadSeed, "seed pattern is empty")
	}
	if pattern.Size() > board.Width() || pattern.Size() > board.Height() {
		return configErr(CodeBadSeed, "seed pattern %dx%d does not fit board %dx%d",
			pattern.Size(), pattern.Size(), board.Width(), board.Height())
	}
	if !board.InBounds(start) {
		return configErr(CodeOutOfBounds, "agent start %s is outside the %dx%d board", start, board.Width(), board.Height())
	}
	if !board.InBounds(goal) {
		return configErr(CodeOutOfBounds, "goal %s is outside the %dx%d board", goal, board.Width(), board.Height())
	}
	if !board.IsOpen(start) {
		return configErr(CodeAgentOnWall, "agent start %s is a wall", start)
	}
	if !board.IsOpen(goal) {
		return configErr(CodeGoalOnWall, "goal %s is a wall", goal)
	}
	return nil
}

// Step advances one generation and moves the agent.
//
// The next grid is computed entirely from the current snapshot. The agent
// is then pushed one cell away from the live cells in its 3×3 neighborhood,
// falling back to an X-only and then a Y-only move when blocked. Goal is
// checked before extinction, extinction before timeout.
func (e *Engine) Step() (TickResult, error) {
	if e.phase != PhaseRunning {
		return TickResult{}, ErrNotRunning
	}

	e.tick++

	prev := e.grid
	next := e.transition(prev)

	sensed := prev
	if e.cfg.Sensing == SenseNext {
		sensed = next
	}
	e.agent = e.move(sensed)
	e.grid = next

	e.outcome = e.evaluate()
	e.phase = PhaseFor(e.outcome)

	return TickResult{
		Grid:    e.grid,
		Agent:   e.agent,
		Tick:    e.tick,
		Outcome: e.outcome,
	}, nil
}

// transition applies the rule set to every open cell of prev.
func (e *Engine) transition(prev CellGrid) CellGrid {
	next := newCellGrid(prev.w, prev.h)
	for y := 0; y < prev.h; y++ {
		for x := 0; x < prev.w; x++ {
			if !e.board.IsOpen(C(x, y)) {
				continue
			}
			n := CountNeighbors(prev, x, y)
			idx := y*prev.w + x
			if prev.cells[idx] {
				next.cells[idx] = e.rules.Survives(n)
			} else {
				next.cells[idx] = e.rules.Born(n)
			}
		}
	}
	return next
}

// move returns the agent position after repulsion from live cells in grid.
// The goal exerts no pull.
func (e *Engine) move(grid CellGrid) Coord {
	pushX, pushY := 0, 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if grid.Get(e.agent.Add(dx, dy)) {
				pushX -= dx
				pushY -= dy
			}
		}
	}
	if pushX == 0 && pushY == 0 {
		return e.agent
	}

	sx, sy := sign(pushX), sign(pushY)
	candidates := [...]Coord{
		e.agent.Add(sx, sy),
		e.agent.Add(sx, 0),
		e.agent.Add(0, sy),
	}
	for _, c := range candidates {
		if e.board.IsOpen(c) {
			return c
		}
	}
	return e.agent
}

func (e *Engine) evaluate() Outcome {
	if e.agent == e.goal {
		return Won
	}
	if e.grid.IsExtinct() {
		return LostExtinction
	}
	if e.tick >= e.cfg.MaxGenerations {
		return LostTimeout
	}
	return Continuing
}

// Stop aborts a running run and returns to the setup phase.
func (e *Engine) Stop() {
	if e.phase == PhaseRunning {
		e.phase = PhaseSetup
	}
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Outcome returns the outcome of the last tick.
func (e *Engine) Outcome() Outcome { return e.outcome }

// Tick returns the number of generations run so far.
func (e *Engine) Tick() int { return e.tick }

// Agent returns the agent position.
func (e *Engine) Agent() Coord { return e.agent }

// Start returns the agent start of the current run.
func (e *Engine) Start() Coord { return e.start }

// Goal returns the goal cell.
func (e *Engine) Goal() Coord { return e.goal }

// Grid returns the current snapshot. It is safe to keep across Steps.
func (e *Engine) Grid() CellGrid { return e.grid }

// Board returns the board of the current run.
func (e *Engine) Board() Board { return e.board }

// Rules returns the frozen rule set of the current run.
func (e *Engine) Rules() RuleSet { return e.rules }

// Pattern returns a copy of the seed pattern of the current run.
func (e *Engine) Pattern() SeedPattern { return e.pattern.Clone() }

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
