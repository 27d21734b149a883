package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/chicago-loop/internal/engine"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(level, outcome string, gens int) RunRecord {
	return RunRecord{
		LevelID:     level,
		Outcome:     outcome,
		Success:     outcome == "won",
		Generations: gens,
		Rules:       "B3/S23",
		Seed:        ".##.,#..#,....,####",
		Final:       engine.C(2, 1),
		Player:      "local",
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(run("tunnels", "won", 12)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run after reopen, got %d", len(runs))
	}
}

func TestSaveAndRetrieveRun(t *testing.T) {
	store := openTest(t)

	want := run("river", "won", 37)
	id, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive ID, got %d", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if got.LevelID != want.LevelID || got.Outcome != want.Outcome || !got.Success {
		t.Errorf("unexpected run: %+v", got)
	}
	if got.Generations != 37 || got.Rules != want.Rules || got.Seed != want.Seed {
		t.Errorf("unexpected run details: %+v", got)
	}
	if got.Final != want.Final || got.Player != "local" {
		t.Errorf("final/player = %v/%q", got.Final, got.Player)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	missing, err := store.RunByID(9999)
	if err != nil || missing != nil {
		t.Errorf("RunByID(9999) = %v, %v; expected nil, nil", missing, err)
	}

	if _, err := store.SaveRun(RunRecord{}); err == nil {
		t.Error("expected error for run without level")
	}
}

func TestBestRunsOrdering(t *testing.T) {
	store := openTest(t)

	for _, r := range []RunRecord{
		run("tunnels", "timeout", 100),
		run("tunnels", "won", 40),
		run("tunnels", "extinction", 3),
		run("tunnels", "won", 18),
		run("streets", "won", 5),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestRuns("tunnels", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(best) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(best))
	}

	wantGens := []int{18, 40, 3, 100}
	for i, g := range wantGens {
		if best[i].Generations != g {
			t.Errorf("best[%d].Generations = %d, expected %d", i, best[i].Generations, g)
		}
	}
	if !best[0].Success || !best[1].Success || best[2].Success {
		t.Error("wins should sort before losses")
	}

	limited, err := store.BestRuns("tunnels", 1)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 run with limit, got %d", len(limited))
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTest(t)

	for _, level := range []string{"tunnels", "river", "streets"} {
		if _, err := store.SaveRun(run(level, "timeout", 100)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(recent))
	}
	if recent[0].LevelID != "streets" || recent[1].LevelID != "river" {
		t.Errorf("expected newest first, got %s, %s", recent[0].LevelID, recent[1].LevelID)
	}
}

func TestLevelStats(t *testing.T) {
	store := openTest(t)

	empty, err := store.LevelStats("tunnels")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.Wins != 0 || empty.BestGenerations != 0 || empty.WinRate() != 0 {
		t.Errorf("expected empty stats, got %+v", empty)
	}

	for _, r := range []RunRecord{
		run("tunnels", "won", 30),
		run("tunnels", "won", 22),
		run("tunnels", "extinction", 4),
		run("tunnels", "timeout", 100),
		run("river", "extinction", 9),
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.LevelStats("tunnels")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 4 || stats.Wins != 2 {
		t.Errorf("runs/wins = %d/%d, expected 4/2", stats.Runs, stats.Wins)
	}
	if stats.BestGenerations != 22 {
		t.Errorf("BestGenerations = %d, expected 22", stats.BestGenerations)
	}
	if stats.WinRate() != 0.5 {
		t.Errorf("WinRate() = %v, expected 0.5", stats.WinRate())
	}

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected stats for 2 levels, got %d", len(all))
	}
	if river := all["river"]; river == nil || river.Runs != 1 || river.Wins != 0 || river.BestGenerations != 0 {
		t.Errorf("unexpected river stats: %+v", all["river"])
	}
}

func TestClearRuns(t *testing.T) {
	store := openTest(t)

	store.SaveRun(run("tunnels", "won", 10))
	store.SaveRun(run("river", "won", 10))

	if err := store.ClearRuns("tunnels"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	tunnels, _ := store.BestRuns("tunnels", 10)
	if len(tunnels) != 0 {
		t.Errorf("expected no tunnels runs after clear, got %d", len(tunnels))
	}
	river, _ := store.BestRuns("river", 10)
	if len(river) != 1 {
		t.Errorf("river runs should be untouched, got %d", len(river))
	}
}
