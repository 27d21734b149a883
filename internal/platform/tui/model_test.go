package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chicago-loop/internal/core"
	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/game"
	"github.com/vovakirdan/chicago-loop/internal/levels"
	"github.com/vovakirdan/chicago-loop/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:            100,
		ScreenH:            30,
		TickRate:           10,
		GenerationInterval: 100 * time.Millisecond,
	}
}

// send feeds a message through the model and follows it with one frame.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	next, _ = next.(Model).Update(TickMsg(time.Now()))
	return next.(Model)
}

func TestModelPlaysAndSavesRun(t *testing.T) {
	store := openStore(t)
	g := game.New(levels.List(), game.DefaultOptions())
	m := NewModel(g, store, testRuntime())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.State().Phase; got != "setup" {
		t.Fatalf("phase = %q after Enter, expected setup", got)
	}

	m = send(t, m, runeKey("s"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	for i := 0; i < 500 && m.State().Outcome == ""; i++ {
		m = send(t, m, TickMsg(time.Now()))
	}
	if m.State().Outcome == "" {
		t.Fatal("run did not finish")
	}
	if m.SavedRuns() != 1 {
		t.Fatalf("SavedRuns() = %d, expected 1", m.SavedRuns())
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	if runs[0].LevelID != "tunnels" || runs[0].Player != "local" {
		t.Errorf("stored run = %+v", runs[0])
	}
	if runs[0].Outcome != m.State().Outcome {
		t.Errorf("stored outcome %q, session says %q", runs[0].Outcome, m.State().Outcome)
	}
}

func TestModelQuit(t *testing.T) {
	g := game.New(levels.List(), game.DefaultOptions())
	m := NewModel(g, nil, testRuntime())

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	g := game.New(levels.List(), game.DefaultOptions())
	m := NewModel(g, nil, testRuntime())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := m.State().Phase; got != "setup" {
		t.Errorf("phase = %q after resize, expected setup", got)
	}
	if !strings.Contains(m.View(), "Generation") {
		t.Error("play screen should still be shown after resize")
	}
}

func TestStorageRecord(t *testing.T) {
	rec := StorageRecord(game.RunRecord{
		LevelID:     "river",
		Outcome:     engine.Won,
		Generations: 12,
		Rules:       "B3/S23",
		Seed:        "##..,##..,....,....",
		Final:       engine.C(18, 5),
		Player:      "alice",
	})
	if !rec.Success || rec.Outcome != "won" {
		t.Errorf("won run converted to %+v", rec)
	}
	if rec.Final != engine.C(18, 5) || rec.Player != "alice" {
		t.Errorf("fields lost in conversion: %+v", rec)
	}

	lost := StorageRecord(game.RunRecord{LevelID: "river", Outcome: engine.LostTimeout})
	if lost.Success {
		t.Error("timeout must not count as success")
	}
}

func TestScoreboardShowsRuns(t *testing.T) {
	store := openStore(t)
	for _, gens := range []int{30, 12} {
		if _, err := store.SaveRun(storage.RunRecord{
			LevelID:     "river",
			Outcome:     "won",
			Success:     true,
			Generations: gens,
			Rules:       "B3/S23",
			Player:      "alice",
		}); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	sb := NewScoreboardModel(store, levels.List(), "river", 100, 30)
	if l, ok := sb.Selected(); !ok || l.ID != "river" {
		t.Fatalf("scoreboard opened on %q, expected river", l.ID)
	}

	rows := scoreRows(sb.runs)
	if len(rows) != 2 || rows[0][2] != "12" {
		t.Errorf("rows = %v, expected the 12-generation run first", rows)
	}
	if !strings.Contains(sb.View(), "2 runs, 2 won") {
		t.Error("stats line missing from view")
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if l, _ := sb.Selected(); l.ID != "streets" {
		t.Errorf("tab moved to %q, expected streets", l.ID)
	}
	if len(sb.runs) != 0 {
		t.Errorf("streets should have no runs, got %d", len(sb.runs))
	}
}
