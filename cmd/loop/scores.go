package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chicago-loop/internal/platform/tui"
	"github.com/vovakirdan/chicago-loop/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show recorded runs",
	Long: `Without a level, shows a summary of every level that has been played.
With a level, shows its best runs: wins first, fewest generations first.

Examples:
  loop scores
  loop scores river
  loop scores river --tui
  loop scores river --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs in the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs of the level")
}

func runScores(cmd *cobra.Command, args []string) error {
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

	store, err := storage.Open(env.cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, env.catalog, levelID, width, height)
	}

	if flagScoresClear {
		if levelID == "" {
			return fmt.Errorf("--clear needs a level")
		}
		if err := store.ClearRuns(levelID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared runs for %s.\n", levelID)
		return nil
	}

	if levelID == "" {
		return printSummary(cmd, env, store)
	}
	return printBestRuns(cmd, env, store, levelID)
}

func printSummary(cmd *cobra.Command, env *env, store *storage.Store) error {
	stats, err := store.AllLevelStats()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Runs by level")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-12s  %5s  %5s  %6s  %5s  %s\n", "Level", "Runs", "Wins", "Rate", "Best", "Last played")
	fmt.Fprintf(out, "  %-12s  %5s  %5s  %6s  %5s  %s\n", "-----", "----", "----", "----", "----", "-----------")

	for _, l := range env.catalog {
		s, ok := stats[l.ID]
		if !ok {
			fmt.Fprintf(out, "  %-12s  %5d  %5d  %6s  %5s  %s\n", l.ID, 0, 0, "-", "-", "never")
			continue
		}
		best := "-"
		if s.BestGenerations > 0 {
			best = fmt.Sprintf("%d", s.BestGenerations)
		}
		fmt.Fprintf(out, "  %-12s  %5d  %5d  %5.0f%%  %5s  %s\n",
			l.ID, s.Runs, s.Wins, s.WinRate()*100, best, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printBestRuns(cmd *cobra.Command, env *env, store *storage.Store, levelID string) error {
	runs, err := store.BestRuns(levelID, flagScoresLimit)
	if err != nil {
		return err
	}
	l, _ := env.level(levelID)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Best runs - %s\n", l.Name)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'loop play %s' to record the first one!\n", levelID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %4s  %-12s  %-10s  %s\n", "Rank", "Result", "Gens", "Rules", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %4s  %-12s  %-10s  %s\n", "----", "------", "----", "-----", "------", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-10s  %4d  %-12s  %-10s  %s\n",
			i+1, r.Outcome, r.Generations, r.Rules, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
