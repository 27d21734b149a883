package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chicago-loop/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying the config file and global flags.
With --defaults, print the built-in default file instead; it is a good
starting point for ~/.loop/config.yaml.

Examples:
  loop config
  loop config --defaults > ~/.loop/config.yaml
  loop --config ./loop.yaml --db ./runs.db config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default config file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagConfigDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	env, err := loadEnv("loop")
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(env.cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = out.Write(data)
	return err
}
