package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chicago-loop/internal/platform/stream"
)

var (
	flagStreamAddr     string
	flagStreamInterval int
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Start the websocket spectator server",
	Long: `Serve runs to browsers and other websocket clients.

Endpoints:
  GET /levels   JSON list of levels
  GET /ws       websocket; query: level, seed, rules, max, sensing, interval

The socket receives a "start" frame, one "tick" frame per generation and a
final "report" frame, then the server closes the connection.

Examples:
  loop stream
  loop stream --addr :9000 --interval 100
  websocat 'ws://localhost:8090/ws?level=tunnels'`,
	Args: cobra.NoArgs,
	RunE: runStream,
}

func init() {
	streamCmd.Flags().StringVar(&flagStreamAddr, "addr", "", "HTTP listen address (overrides config)")
	streamCmd.Flags().IntVar(&flagStreamInterval, "interval", -1, "Milliseconds between frames (overrides config)")
}

func runStream(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv("loop-stream")
	if err != nil {
		return err
	}

	cfg := stream.Config{
		Address:  env.cfg.Stream.Address,
		Interval: env.cfg.Stream.StreamInterval(),
		Engine:   env.engine,
		Catalog:  env.catalog,
	}
	if flagStreamAddr != "" {
		cfg.Address = flagStreamAddr
	}
	if flagStreamInterval >= 0 {
		cfg.Interval = time.Duration(flagStreamInterval) * time.Millisecond
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Streaming Chicago Loop on %s\n", cfg.Address)
	return stream.NewServer(cfg, env.logger).ListenAndServe(ctx)
}
