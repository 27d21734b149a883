package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/storage"
)

var (
	flagSimLevel    string
	flagSimSeed     string
	flagSimRules    string
	flagSimMax      int
	flagSimSensing  string
	flagSimSolution bool
	flagSimJSON     bool
	flagSimSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a level headless and print the report",
	Long: `Seed a level, run it to the end and print the result.

The seed is given as comma-separated square rows; '#', '1' or 'x' marks a live
cell and '.', '0' or '-' an empty one. The pattern is centered on the agent.
Rules use B/S notation, e.g. B3/S23.

With --solution the level's known seed and rules are used; --seed and --rules
still override them.

Examples:
  loop simulate --level tunnels --solution
  loop simulate --level river --seed "##..,##..,##..,####" --rules B12345/S0 --json
  loop simulate --level streets --seed "###.,#.#.,###.,...." --rules B3/S24 --sensing next
  loop simulate --level tunnels --solution --save`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimLevel, "level", "tunnels", "Level ID")
	simulateCmd.Flags().StringVar(&flagSimSeed, "seed", "", "Seed pattern rows, comma-separated")
	simulateCmd.Flags().StringVar(&flagSimRules, "rules", "", "Rules in B/S notation (default B3/S23)")
	simulateCmd.Flags().IntVar(&flagSimMax, "max", 0, "Generation limit (0 = config)")
	simulateCmd.Flags().StringVar(&flagSimSensing, "sensing", "", "Agent sensing: previous or next (default from config)")
	simulateCmd.Flags().BoolVar(&flagSimSolution, "solution", false, "Use the level's known solution")
	simulateCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the report as JSON")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the runs database")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv("loop")
	if err != nil {
		return err
	}
	l, err := env.level(flagSimLevel)
	if err != nil {
		return err
	}

	var pattern engine.SeedPattern
	rules := engine.ConwayRules()
	haveSeed := false
	if flagSimSolution {
		if l.Solution == nil {
			return fmt.Errorf("level %q has no known solution", l.ID)
		}
		pattern, rules, haveSeed = l.Solution.Pattern, l.Solution.Rules, true
	}
	if flagSimSeed != "" {
		pattern, err = engine.ParseSeedPattern(strings.Split(flagSimSeed, ","))
		if err != nil {
			return err
		}
		haveSeed = true
	}
	if !haveSeed {
		return fmt.Errorf("a seed is required (use --seed or --solution)")
	}
	if flagSimRules != "" {
		if rules, err = engine.ParseRuleSet(flagSimRules); err != nil {
			return err
		}
	}

	cfg := env.engine
	if flagSimMax > 0 {
		cfg.MaxGenerations = flagSimMax
	}
	if flagSimSensing != "" {
		if cfg.Sensing, err = engine.ParseSensing(flagSimSensing); err != nil {
			return err
		}
	}

	report, err := l.Simulate(pattern, rules, cfg)
	if err != nil {
		return err
	}
	env.logger.Debug("simulation finished", "level", l.ID, "outcome", report.Outcome, "generations", report.TickCount)

	if flagSimSave {
		if err := saveReport(env.cfg.Storage.DBPath, l.ID, pattern, rules, report); err != nil {
			env.logger.Warn("could not save run", "error", err)
		}
	}

	out := cmd.OutOrStdout()
	if flagSimJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "Level:    %s (%s)\n", l.Name, l.ID)
	fmt.Fprintf(out, "Rules:    %s\n", rules)
	fmt.Fprintf(out, "Seed:     %s\n", pattern)
	fmt.Fprintf(out, "Sensing:  %s, limit %d generations\n", cfg.Sensing, cfg.MaxGenerations)
	fmt.Fprintln(out)
	switch report.Outcome {
	case engine.Won.String():
		fmt.Fprintf(out, "ESCAPED in %d generations.\n", report.TickCount)
	case engine.LostExtinction.String():
		fmt.Fprintf(out, "LOST: all cells died after %d generations.\n", report.TickCount)
	default:
		fmt.Fprintf(out, "LOST: the %s got stuck after %d generations.\n", itemOr(l.Item), report.TickCount)
	}
	fmt.Fprintf(out, "Final position %s, goal %s.\n", report.FinalAgentPosition, l.Goal)
	return nil
}

func saveReport(dbPath, levelID string, pattern engine.SeedPattern, rules engine.RuleSet, report engine.Report) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveRun(storage.RunRecord{
		LevelID:     levelID,
		Outcome:     report.Outcome,
		Success:     report.Success,
		Generations: report.TickCount,
		Rules:       rules.String(),
		Seed:        pattern.String(),
		Final:       report.FinalAgentPosition,
		Player:      "cli",
	})
	return err
}

func itemOr(item string) string {
	if item == "" {
		return "agent"
	}
	return item
}
