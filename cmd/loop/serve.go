package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chicago-loop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Chicago Loop SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session starting at the level menu.
Finished runs are recorded with the SSH user name, so everyone shares
the same scoreboard.

Host key handling:
  - If --host-key (or server.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.loop/host_key

Examples:
  loop serve                           # Listen on the configured address
  loop serve --ssh :2222               # Listen on port 2222
  loop serve --host-key ./my_host_key  # Use specific host key
  loop serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv("loop-ssh")
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     env.cfg.Server.Address,
		HostKeyPath: env.cfg.Server.HostKey,
		DBPath:      env.cfg.Storage.DBPath,
		IdleTimeout: env.cfg.Server.IdleTimeout(),
		Runtime:     env.cfg.Play.Runtime(80, 24),
		Game:        env.gameOptions(""),
		Catalog:     env.catalog,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg, env.logger)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting Chicago Loop SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
