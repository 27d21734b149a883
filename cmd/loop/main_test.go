package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/levels"
	"github.com/vovakirdan/chicago-loop/internal/storage"
)

func resetFlags() {
	flagConfig, flagDBPath, flagLevelsDir, flagLogLevel = "", "", "", "error"
	flagSimLevel, flagSimSeed, flagSimRules, flagSimSensing = "tunnels", "", "", ""
	flagSimMax = 0
	flagSimSolution, flagSimJSON, flagSimSave = false, false, false
	flagScoresTUI, flagScoresClear = false, false
	flagScoresLimit = 10
	flagSchemaOut = ""
	flagConfigDefaults = false
}

// execute runs the root command with an isolated HOME and database.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--log-level", "error", "--db", dbPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "runs.db"), "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"tunnels", "river", "streets", "built-in"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "tunnels") > strings.Index(out, "streets") {
		t.Error("levels should be listed in campaign order")
	}
}

func TestSimulateJSONMatchesEngine(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "runs.db"),
		"simulate", "--level", "river", "--solution", "--json")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	var got engine.Report
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a report: %v\n%s", err, out)
	}

	l, err := levels.Get("river")
	if err != nil {
		t.Fatal(err)
	}
	want, err := l.Simulate(l.Solution.Pattern, l.Solution.Rules, engine.DefaultConfig())
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("report = %+v, expected %+v", got, want)
	}
	if len(got.PositionHistory) != got.TickCount+1 {
		t.Errorf("history has %d entries for %d ticks", len(got.PositionHistory), got.TickCount)
	}
}

func TestSimulateOverrides(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "runs.db"),
		"simulate", "--level", "streets", "--seed", "....,.#..,....,....", "--rules", "B3/S23", "--max", "5")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !strings.Contains(out, "all cells died after 1 generations") {
		t.Errorf("a lone cell should die at once:\n%s", out)
	}
	if !strings.Contains(out, "limit 5 generations") {
		t.Errorf("--max not applied:\n%s", out)
	}
}

func TestSimulateErrors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no seed", []string{"simulate", "--level", "tunnels"}, "seed is required"},
		{"unknown level", []string{"simulate", "--level", "loop", "--solution"}, "unknown level"},
		{"bad rules", []string{"simulate", "--solution", "--rules", "B9/S2"}, engine.CodeBadRule},
		{"bad seed", []string{"simulate", "--seed", "##,#"}, engine.CodeBadSeed},
		{"bad sensing", []string{"simulate", "--solution", "--sensing", "sideways"}, "sensing"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, db, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSimulateSaveAndScores(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	if _, err := execute(t, db, "simulate", "--level", "tunnels", "--solution", "--save"); err != nil {
		t.Fatalf("simulate --save: %v", err)
	}

	store, err := storage.Open(db)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	runs, err := store.RecentRuns(10)
	store.Close()
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].LevelID != "tunnels" || runs[0].Player != "cli" {
		t.Fatalf("stored runs = %+v", runs)
	}

	out, err := execute(t, db, "scores", "tunnels")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if !strings.Contains(out, "B12345/S0") || !strings.Contains(out, "cli") {
		t.Errorf("best runs missing the saved run:\n%s", out)
	}

	out, err = execute(t, db, "scores")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if !strings.Contains(out, "never") {
		t.Errorf("unplayed levels should show as never played:\n%s", out)
	}

	if _, err := execute(t, db, "scores", "tunnels", "--clear"); err != nil {
		t.Fatalf("scores --clear: %v", err)
	}
	out, _ = execute(t, db, "scores", "tunnels")
	if !strings.Contains(out, "No runs recorded yet") {
		t.Errorf("runs should be cleared:\n%s", out)
	}
}

func TestSchemaCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schemas", "level.json")
	if _, err := execute(t, filepath.Join(t.TempDir(), "runs.db"), "schema", "--out", out); err != nil {
		t.Fatalf("schema: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if doc["title"] != "Chicago Loop level" {
		t.Errorf("title = %v", doc["title"])
	}
}

func TestConfigCommandAppliesFlags(t *testing.T) {
	db := filepath.Join(t.TempDir(), "custom.db")
	out, err := execute(t, db, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "db_path: "+db) {
		t.Errorf("--db should override storage.db_path:\n%s", out)
	}
	if !strings.Contains(out, "max_generations: 100") {
		t.Errorf("defaults missing:\n%s", out)
	}

	out, err = execute(t, db, "config", "--defaults")
	if err != nil {
		t.Fatalf("config --defaults: %v", err)
	}
	if !strings.Contains(out, "engine:") || strings.Contains(out, db) {
		t.Errorf("--defaults should print the built-in file:\n%s", out)
	}
}
