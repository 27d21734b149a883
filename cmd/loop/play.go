package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chicago-loop/internal/game"
	"github.com/vovakirdan/chicago-loop/internal/platform/tui"
	"github.com/vovakirdan/chicago-loop/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play Chicago Loop",
	Long: `Start the interactive game. Without a level the campaign menu is shown.

Controls:
  Arrows/HJKL  - Move the seed cursor / pick a level
  Space        - Toggle a seed cell (stops a running simulation)
  0-8          - Toggle a neighbor count in the active rule set
  Tab          - Switch between birth and survive rules
  S            - Load the level's known solution
  R            - Reset seed and rules (rerun after a result)
  Enter        - Start the level / run the simulation / continue
  Esc/B        - Back to the level menu
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot to ~/.loop/screenshots

Examples:
  loop play
  loop play river
  loop play --levels ./my-levels canal`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	env, err := loadEnv("loop")
	if err != nil {
		return err
	}

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
		if _, err := env.level(levelID); err != nil {
			return err
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(env.cfg.Storage.DBPath)
	if err != nil {
		env.logger.Warn("could not open runs database, runs will not be saved", "error", err)
		store = nil
	}

	g := game.New(env.catalog, env.gameOptions("local"))
	runErr := tui.Run(g, store, env.cfg.Play.Runtime(width, height), levelID)

	if store != nil {
		store.Close()
	}
	return runErr
}
