package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/prodcons-bench/internal/prodcons"
)

var runFlags experimentFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one experiment and print every task's outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runFlags.config()
		if err != nil {
			return err
		}

		fmt.Println("Producer/consumer experiment")
		printConfig(cfg)
		fmt.Println("─────────────────────────────────────────────────")

		res, err := prodcons.Run(cmd.Context(), cfg)
		printResult(res, cfg.ExpectedItems())
		if err != nil {
			// Failed tasks are a measured outcome, not a command error.
			logger.Debug("run finished with failed tasks", "err", err)
		}
		return nil
	},
}

func init() {
	runFlags.register(runCmd.Flags())
	rootCmd.AddCommand(runCmd)
}

func printResult(res prodcons.Result, expected int64) {
	fmt.Printf("\n  %-9s %4s  %-10s %10s %10s  %s\n", "ROLE", "ID", "STATE", "COUNT", "TARGET", "ELAPSED")
	for _, rep := range res.Tasks {
		fmt.Printf("  %-9s %4d  %-10s %10d %10d  %v\n",
			rep.Role, rep.ID, rep.State, rep.Count, rep.Target, rep.Elapsed)
		if rep.Err != nil {
			fmt.Printf("  %15s %v\n", "└─", rep.Err)
		}
	}

	fmt.Printf("\nResult:\n")
	fmt.Printf("  State:      %s\n", res.State)
	fmt.Printf("  Items:      %d of %d\n", res.Items, expected)
	fmt.Printf("  Produced:   %d\n", res.Produced)
	fmt.Printf("  Remaining:  %d\n", res.Remaining)
	fmt.Printf("  Elapsed:    %v (slowest task)\n", res.Elapsed)
	fmt.Printf("  Wall:       %v\n", res.Wall)
	if res.Cause != nil {
		fmt.Printf("  Cause:      %v\n", res.Cause)
	}
	if res.Anomalous(expected) {
		fmt.Printf("\n  ANOMALY: expected %d items in state %s\n", expected, prodcons.StateSucceeded)
	}
}
