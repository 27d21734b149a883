package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chicago-loop/internal/levels/formats"
)

var flagSchemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of custom level files",
	Long: `Print the JSON Schema that custom level YAML files follow. Point your
editor's YAML language server at it to get completion and validation.

Examples:
  loop schema
  loop schema --out ~/.loop/level.schema.json`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&flagSchemaOut, "out", "", "Write the schema to this file instead of stdout")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	data, err := json.MarshalIndent(formats.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	data = append(data, '\n')

	if flagSchemaOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flagSchemaOut), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	if err := os.WriteFile(flagSchemaOut, data, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flagSchemaOut)
	return nil
}
