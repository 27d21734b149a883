// loop is Chicago Loop: a cellular-automaton puzzle played in the terminal.
// Seed a small pattern, pick birth and survive rules, and let the living
// cells push the agent through the flooded tunnels to the exit.
//
// Usage:
//
//	loop list                 - List built-in and custom levels
//	loop play [level]         - Play interactively
//	loop simulate             - Run a level headless and print the report
//	loop scores [level]       - Show recorded runs
//	loop serve                - Start SSH server for remote play
//	loop stream               - Start websocket spectator server
//	loop schema               - Print the JSON Schema of level files
//	loop config               - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.loop/config.yaml, configs/loop.yaml)
//	--db <path>         - Runs database (default: ~/.loop/runs.db)
//	--levels <dir>      - Directory of custom level YAML files
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/chicago-loop/internal/config"
	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/game"
	"github.com/vovakirdan/chicago-loop/internal/levels"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLevelsDir string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "loop",
	Short: "Chicago Loop - steer a rat through the tunnels with the Game of Life",
	Long: `Chicago Loop is a cellular-automaton puzzle. Each level is a flooded map
of Chicago with an agent and an exit. You place a small seed of living cells
next to the agent and choose the birth and survive rules; every generation the
agent is pushed away from the living cells. Get it to the exit before the
cells die out or time runs out.

Available commands:
  list       - Show built-in and custom levels
  play       - Play interactively
  simulate   - Run a seed headless and print the report
  scores     - View recorded runs
  serve      - Start SSH server for remote play
  stream     - Start websocket spectator server
  schema     - Print the JSON Schema of level files
  config     - Print the effective configuration

Examples:
  loop list
  loop play tunnels
  loop simulate --level tunnels --solution --json
  loop scores river
  loop serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of custom level files (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
}

// env is the resolved configuration shared by every command.
type env struct {
	cfg     config.Config
	engine  engine.Config
	logger  *log.Logger
	catalog []levels.Level
}

// loadEnv applies the global flags on top of the loaded config and
// collects the level catalog.
func loadEnv(prefix string) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})

	engCfg, err := cfg.EngineSettings()
	if err != nil {
		return nil, err
	}

	catalog, err := levels.Catalog(cfg.Levels.Dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("levels loaded", "count", len(catalog), "dir", cfg.Levels.Dir)

	return &env{
		cfg:     cfg,
		engine:  engCfg,
		logger:  logger,
		catalog: catalog,
	}, nil
}

// gameOptions returns session options for the given player.
func (e *env) gameOptions(player string) game.Options {
	return game.Options{
		Engine:   e.engine,
		SeedSize: e.cfg.Engine.SeedSize,
		Player:   player,
	}
}

// level looks up a level in the catalog.
func (e *env) level(id string) (levels.Level, error) {
	l, ok := levels.Find(e.catalog, id)
	if !ok {
		return levels.Level{}, fmt.Errorf("unknown level %q (run 'loop list' to see available levels)", id)
	}
	return l, nil
}
