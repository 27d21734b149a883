package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chicago-loop/internal/core"
	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/game"
	"github.com/vovakirdan/chicago-loop/internal/storage"
)

// Model is the Bubble Tea model that drives one game session.
type Model struct {
	game       *game.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	saved      int // Runs persisted during this session
	quitting   bool
}

// NewModel creates a Bubble Tea model for the given session and resets it
// to the level menu. store may be nil, in which case runs are not recorded.
func NewModel(g *game.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	g.Reset(cfg)
	return Model{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.Default(),
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  g.State(),
	}
}

// WithLogger returns a copy of the model that reports through logger.
func (m Model) WithLogger(logger *log.Logger) Model {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records the key for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the session intact; the next frame is drawn at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one frame of the session.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if rec, ok := m.game.RunFinished(); ok {
		m.saveRun(rec)
	}

	if m.gameState.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun persists a finished run. Failures are logged; play continues.
func (m *Model) saveRun(rec game.RunRecord) {
	if m.store == nil {
		return
	}
	id, err := m.store.SaveRun(StorageRecord(rec))
	if err != nil {
		m.logger.Warn("could not save run", "level", rec.LevelID, "error", err)
		return
	}
	m.saved++
	m.logger.Debug("run saved", "id", id, "level", rec.LevelID, "outcome", rec.Outcome, "generations", rec.Generations)
}

// StorageRecord converts a finished run to its persisted form.
func StorageRecord(rec game.RunRecord) storage.RunRecord {
	return storage.RunRecord{
		LevelID:     rec.LevelID,
		Outcome:     rec.Outcome.String(),
		Success:     rec.Outcome == engine.Won,
		Generations: rec.Generations,
		Rules:       rec.Rules,
		Seed:        rec.Seed,
		Final:       rec.Final,
		Player:      rec.Player,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".loop", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// State returns the session state as of the last frame.
func (m Model) State() core.GameState {
	return m.gameState
}

// SavedRuns returns how many runs this model has persisted.
func (m Model) SavedRuns() int {
	return m.saved
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local session. A non-empty
// levelID skips the menu and opens that level's setup.
func Run(g *game.Game, store *storage.Store, cfg core.RuntimeConfig, levelID string) error {
	model := NewModel(g, store, cfg)
	if levelID != "" {
		if err := g.SelectLevel(levelID); err != nil {
			return err
		}
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
