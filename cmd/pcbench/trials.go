package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/prodcons-bench/internal/prodcons"
	"github.com/randomizedcoder/prodcons-bench/internal/tick"
)

var (
	trialsFlags    experimentFlags
	trialsCount    int
	trialsProgress time.Duration
	trialsStop     bool
)

var trialsCmd = &cobra.Command{
	Use:   "trials",
	Short: "Repeat one experiment and count anomalous trials",
	Long: `Repeat one experiment configuration and count the trials whose item
count differs from producers*items or whose state is not SUCCEEDED.

Against the unsafe variant, use --stall or --timeout: a trial that loses
items would otherwise spin forever.`,
	RunE: runTrials,
}

func init() {
	trialsFlags.register(trialsCmd.Flags())
	f := trialsCmd.Flags()
	f.IntVar(&trialsCount, "trials", 100, "Number of trials")
	f.DurationVar(&trialsProgress, "progress", tick.DefaultInterval, "Progress report interval")
	f.BoolVar(&trialsStop, "stop-on-anomaly", false, "Stop at the first anomalous trial")
	rootCmd.AddCommand(trialsCmd)
}

type trialStats struct {
	runs      int
	anomalies int
	states    map[prodcons.State]int
	min, max  time.Duration
	total     time.Duration
	firstBad  *prodcons.Result
}

func (s *trialStats) add(res prodcons.Result, expected int64) {
	s.runs++
	s.states[res.State]++
	if s.runs == 1 || res.Elapsed < s.min {
		s.min = res.Elapsed
	}
	s.max = max(s.max, res.Elapsed)
	s.total += res.Elapsed
	if res.Anomalous(expected) {
		s.anomalies++
		if s.firstBad == nil {
			s.firstBad = &res
		}
	}
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, err := trialsFlags.config()
	if err != nil {
		return err
	}
	expected := cfg.ExpectedItems()

	fmt.Printf("Producer/consumer trials (%d trials)\n", trialsCount)
	printConfig(cfg)
	fmt.Println("─────────────────────────────────────────────────")

	ctx := cmd.Context()
	progress := tick.NewAtomicTicker(trialsProgress)
	stats := trialStats{states: make(map[prodcons.State]int)}
	start := time.Now()

	for i := 0; i < trialsCount && ctx.Err() == nil; i++ {
		res, err := prodcons.Run(ctx, cfg)
		if err != nil {
			logger.Debug("trial had failed tasks", "trial", i, "err", err)
		}
		stats.add(res, expected)

		if progress.Tick() {
			fmt.Printf("  %d/%d trials, %d anomalous\n", stats.runs, trialsCount, stats.anomalies)
		}
		if trialsStop && stats.anomalies > 0 {
			break
		}
	}

	if stats.runs == 0 {
		return ctx.Err()
	}

	fmt.Printf("\nResults (%d trials in %v):\n", stats.runs, time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Anomalous:  %d\n", stats.anomalies)
	for _, s := range []prodcons.State{prodcons.StateSucceeded, prodcons.StateFailed, prodcons.StateCancelled} {
		if n := stats.states[s]; n > 0 {
			fmt.Printf("  %-10s  %d\n", s.String()+":", n)
		}
	}
	fmt.Printf("\nElapsed (slowest task per trial):\n")
	fmt.Printf("  min: %v\n", stats.min)
	fmt.Printf("  avg: %v\n", stats.total/time.Duration(stats.runs))
	fmt.Printf("  max: %v\n", stats.max)

	if stats.firstBad != nil {
		fmt.Printf("\nFirst anomalous trial:\n")
		printResult(*stats.firstBad, expected)
	}
	return nil
}
