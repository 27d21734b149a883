package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/chicago-loop/internal/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults differ from Default():\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestLoadCustomPathKeepsMissingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.yaml")
	data := "engine:\n  max_generations: 40\n  sensing: next\nstream:\n  interval_ms: 0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.MaxGenerations != 40 || cfg.Engine.Sensing != "next" {
		t.Errorf("engine section not applied: %+v", cfg.Engine)
	}
	if cfg.Engine.SeedSize != 4 {
		t.Errorf("seed_size should keep default 4, got %d", cfg.Engine.SeedSize)
	}
	if cfg.Play != Default().Play {
		t.Errorf("play section should keep defaults, got %+v", cfg.Play)
	}
	if cfg.Stream.IntervalMS != 0 {
		t.Errorf("explicit zero interval should be kept, got %d", cfg.Stream.IntervalMS)
	}

	ec, err := cfg.EngineSettings()
	if err != nil {
		t.Fatalf("EngineSettings: %v", err)
	}
	if ec.MaxGenerations != 40 || ec.Sensing != engine.SenseNext {
		t.Errorf("EngineSettings = %+v", ec)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".loop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("levels:\n  dir: /srv/levels\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Levels.Dir != "/srv/levels" {
		t.Errorf("levels.dir = %q", cfg.Levels.Dir)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("engine: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("engine:\n  max_generations: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil || !strings.Contains(err.Error(), "max_generations") {
		t.Errorf("expected max_generations error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"sensing", func(c *Config) { c.Engine.Sensing = "sideways" }, "sensing"},
		{"seed size", func(c *Config) { c.Engine.SeedSize = 0 }, "seed_size"},
		{"interval", func(c *Config) { c.Play.GenerationIntervalMS = -1 }, "generation_interval_ms"},
		{"tick rate", func(c *Config) { c.Play.TickRate = 0 }, "tick_rate"},
		{"idle", func(c *Config) { c.Server.IdleTimeoutMinutes = -5 }, "idle_timeout_minutes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("expected error mentioning %q, got %v", tc.field, err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should validate: %v", err)
	}
}

func TestPlayRuntime(t *testing.T) {
	tests := []struct {
		intervalMS, tickRate, want int
	}{
		{500, 30, 15},
		{500, 60, 30},
		{10, 30, 1},
		{1, 1, 1},
		{250, 10, 3},
	}
	for _, tc := range tests {
		p := PlayConfig{GenerationIntervalMS: tc.intervalMS, TickRate: tc.tickRate}
		rc := p.Runtime(100, 30)
		if rc.ScreenW != 100 || rc.ScreenH != 30 {
			t.Errorf("Runtime size = %dx%d", rc.ScreenW, rc.ScreenH)
		}
		if got := rc.FramesPerGeneration(); got != tc.want {
			t.Errorf("%dms @ %dfps: %d frames per generation, expected %d", tc.intervalMS, tc.tickRate, got, tc.want)
		}
	}
}
