package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration.
// Search order: customPath -> ~/.loop/config.yaml -> ./configs/loop.yaml -> embedded default
//
// Fields missing from a file keep their default values. The result is
// validated before it is returned.
func Load(customPath string) (Config, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg := Default()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "loop.yaml")} {
		if path == "" {
			continue
		}
		if cfg, ok := tryFile(path); ok {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultLoopYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".loop", filename)
}
