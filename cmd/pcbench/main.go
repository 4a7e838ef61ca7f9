// Command pcbench runs producer/consumer experiments against the queue
// variants and prints per-task results.
//
// Usage:
//
//	go run ./cmd/pcbench run --variant locked --producers 4 --consumers 4 --items 1000
//	go run ./cmd/pcbench trials --variant unsafe --trials 100 --stall 50ms
//	go run ./cmd/pcbench queue -n 1000000 --capacity 1024
//	go run ./cmd/pcbench cancel -n 10000000
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	logLevel string
	logger   = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:          "pcbench",
	Short:        "Producer/consumer queue experiments",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
