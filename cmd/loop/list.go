package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows the built-in campaign followed by any custom levels found in the levels directory.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv("loop")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(env.catalog) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	fmt.Fprintln(out, "Available levels:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, l := range env.catalog {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %-24s  %-6s  %-7s  %s\n", maxIDLen, "ID", "Name", "Size", "Carries", "Source")
	fmt.Fprintf(out, "  %-*s  %-24s  %-6s  %-7s  %s\n", maxIDLen, "--", "----", "----", "-------", "------")

	for _, l := range env.catalog {
		source := "built-in"
		if !l.BuiltIn() {
			source = l.FilePath
		}
		size := fmt.Sprintf("%dx%d", l.Board.Width(), l.Board.Height())
		fmt.Fprintf(out, "  %-*s  %-24s  %-6s  %-7s  %s\n", maxIDLen, l.ID, l.Name, size, l.Item, source)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'loop play <id>' to play a level.")
	return nil
}
