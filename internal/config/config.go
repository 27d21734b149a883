// Package config provides YAML-based configuration loading for Chicago Loop.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/chicago-loop/internal/core"
	"github.com/vovakirdan/chicago-loop/internal/engine"
)

// Config contains all tunable settings.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Play    PlayConfig    `yaml:"play"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Stream  StreamConfig  `yaml:"stream"`
	Levels  LevelsConfig  `yaml:"levels"`
}

// EngineConfig defines simulation parameters.
type EngineConfig struct {
	MaxGenerations int    `yaml:"max_generations"`
	Sensing        string `yaml:"sensing"` // "previous" or "next"
	SeedSize       int    `yaml:"seed_size"`
}

// PlayConfig defines interactive pacing.
type PlayConfig struct {
	GenerationIntervalMS int `yaml:"generation_interval_ms"`
	TickRate             int `yaml:"tick_rate"` // Frames per second
}

// StorageConfig defines where finished runs are recorded.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"` // Auto-generated if empty
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// StreamConfig defines the websocket spectator server.
type StreamConfig struct {
	Address    string `yaml:"address"`
	IntervalMS int    `yaml:"interval_ms"` // Delay between pushed generations
}

// LevelsConfig points at custom level files.
type LevelsConfig struct {
	Dir string `yaml:"dir"`
}

// EngineSettings converts the engine section to an engine.Config.
func (c Config) EngineSettings() (engine.Config, error) {
	sensing, err := engine.ParseSensing(c.Engine.Sensing)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		MaxGenerations: c.Engine.MaxGenerations,
		Sensing:        sensing,
	}, nil
}

// Runtime returns the frame and generation pacing for a screen of w by h.
func (p PlayConfig) Runtime(w, h int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:            w,
		ScreenH:            h,
		TickRate:           p.TickRate,
		GenerationInterval: time.Duration(p.GenerationIntervalMS) * time.Millisecond,
	}
}

// StreamInterval returns the delay between pushed generations.
func (s StreamConfig) StreamInterval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// IdleTimeout returns the SSH idle timeout.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Engine.MaxGenerations <= 0 {
		return fmt.Errorf("config: engine.max_generations must be positive, got %d", c.Engine.MaxGenerations)
	}
	if _, err := engine.ParseSensing(c.Engine.Sensing); err != nil {
		return fmt.Errorf("config: engine.sensing: %w", err)
	}
	if c.Engine.SeedSize <= 0 {
		return fmt.Errorf("config: engine.seed_size must be positive, got %d", c.Engine.SeedSize)
	}
	if c.Play.GenerationIntervalMS <= 0 {
		return fmt.Errorf("config: play.generation_interval_ms must be positive, got %d", c.Play.GenerationIntervalMS)
	}
	if c.Play.TickRate <= 0 {
		return fmt.Errorf("config: play.tick_rate must be positive, got %d", c.Play.TickRate)
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: server.idle_timeout_minutes must not be negative")
	}
	if c.Stream.IntervalMS < 0 {
		return fmt.Errorf("config: stream.interval_ms must not be negative")
	}
	return nil
}
