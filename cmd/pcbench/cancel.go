package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
)

var cancelIterations int

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Measure one cancellation check per cancel mode",
	RunE:  runCancel,
}

func init() {
	cancelCmd.Flags().IntVarP(&cancelIterations, "iterations", "n", 10_000_000, "Number of iterations")
	rootCmd.AddCommand(cancelCmd)
}

func runCancel(cmd *cobra.Command, args []string) error {
	if cancelIterations < 1 {
		return fmt.Errorf("-n must be >= 1")
	}

	fmt.Printf("Benchmarking cancellation check (%d iterations)\n", cancelIterations)
	fmt.Println("─────────────────────────────────────────────────")

	measure := func(c cancel.Canceler) time.Duration {
		start := time.Now()
		for i := 0; i < cancelIterations; i++ {
			_ = c.Done()
		}
		return time.Since(start)
	}

	ctxDur := measure(cancel.New(cancel.ModeContext, cmd.Context()))
	atomicDur := measure(cancel.New(cancel.ModeAtomic, cmd.Context()))

	// Results
	ctxPerOp := float64(ctxDur.Nanoseconds()) / float64(cancelIterations)
	atomicPerOp := float64(atomicDur.Nanoseconds()) / float64(cancelIterations)

	fmt.Printf("\nResults:\n")
	fmt.Printf("  Context:  %v (%.2f ns/op)\n", ctxDur, ctxPerOp)
	fmt.Printf("  Atomic:   %v (%.2f ns/op)\n", atomicDur, atomicPerOp)
	fmt.Printf("\n  Speedup:  %.2fx\n", ctxPerOp/atomicPerOp)

	// Extrapolate to ops/second
	fmt.Printf("\nThroughput (theoretical max):\n")
	fmt.Printf("  Context:  %.2f M ops/sec\n", 1000/ctxPerOp)
	fmt.Printf("  Atomic:   %.2f M ops/sec\n", 1000/atomicPerOp)
	return nil
}
