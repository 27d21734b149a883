package config

import (
	_ "embed"
)

//go:embed defaults/loop.yaml
var defaultLoopYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			MaxGenerations: 100,
			Sensing:        "previous",
			SeedSize:       4,
		},
		Play: PlayConfig{
			GenerationIntervalMS: 500,
			TickRate:             30,
		},
		Storage: StorageConfig{
			DBPath: "~/.loop/runs.db",
		},
		Server: ServerConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
		Stream: StreamConfig{
			Address:    ":8090",
			IntervalMS: 200,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLoopYAML
}
