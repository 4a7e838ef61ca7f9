package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/prodcons-bench/internal/queue"
)

var (
	queueIterations int
	queueCapacity   int
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Measure single-goroutine enqueue+dequeue cost per variant",
	RunE:  runQueue,
}

func init() {
	f := queueCmd.Flags()
	f.IntVarP(&queueIterations, "iterations", "n", 10_000_000, "Number of iterations")
	f.IntVar(&queueCapacity, "capacity", 1024, "Queue capacity")
	rootCmd.AddCommand(queueCmd)
}

func runQueue(cmd *cobra.Command, args []string) error {
	if queueIterations < 1 {
		return fmt.Errorf("-n must be >= 1")
	}

	fmt.Printf("Benchmarking queue variants (%d iterations, capacity=%d)\n", queueIterations, queueCapacity)
	fmt.Println("─────────────────────────────────────────────────")

	type result struct {
		v     queue.Variant
		dur   time.Duration
		perOp float64
	}
	var results []result

	for _, v := range queue.Variants() {
		q, err := queue.Build[int](v, queue.Options{Capacity: queueCapacity, Producers: 1})
		if err != nil {
			return fmt.Errorf("%s: %w", v, err)
		}
		enq := queue.EnqueuerFor(q, 0)

		start := time.Now()
		for i := 0; i < queueIterations; i++ {
			if err := enq.Enqueue(i); err != nil {
				return fmt.Errorf("%s: enqueue: %w", v, err)
			}
			if _, err := q.TryDequeue(); err != nil {
				return fmt.Errorf("%s: dequeue: %w", v, err)
			}
		}
		dur := time.Since(start)
		q.Close()

		results = append(results, result{v, dur, float64(dur.Nanoseconds()) / float64(queueIterations)})
		logger.Debug("variant measured", "variant", v.String(), "duration", dur)
	}

	// Baseline is the channel variant
	var base float64
	for _, r := range results {
		if r.v == queue.VariantChannel {
			base = r.perOp
		}
	}

	fmt.Printf("\nResults (enqueue + dequeue per iteration):\n")
	for _, r := range results {
		fmt.Printf("  %-9s %14v (%.2f ns/op, %.2fx vs channel)\n", r.v.String()+":", r.dur, r.perOp, base/r.perOp)
	}

	// Extrapolate to ops/second
	fmt.Printf("\nThroughput (theoretical max):\n")
	for _, r := range results {
		fmt.Printf("  %-9s %.2f M ops/sec\n", r.v.String()+":", 1000/r.perOp)
	}
	return nil
}
