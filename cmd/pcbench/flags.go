package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
	"github.com/randomizedcoder/prodcons-bench/internal/prodcons"
	"github.com/randomizedcoder/prodcons-bench/internal/queue"
)

// experimentFlags are the flags shared by run and trials.
type experimentFlags struct {
	variant       queue.Variant
	producers     int
	consumers     int
	items         int
	consumerItems int
	capacity      int
	timeout       time.Duration
	stall         time.Duration
	cancelMode    cancel.Mode
}

func (e *experimentFlags) register(f *pflag.FlagSet) {
	e.variant = queue.VariantLocked
	f.Var(&e.variant, "variant", "Queue variant: locked, lockfree, channel, sharded or unsafe")
	f.IntVar(&e.producers, "producers", 4, "Producer tasks")
	f.IntVar(&e.consumers, "consumers", 4, "Consumer tasks")
	f.IntVar(&e.items, "items", 1000, "Items per producer")
	f.IntVar(&e.consumerItems, "consumer-items", 0, "Items per consumer (default: producers*items/consumers)")
	f.IntVar(&e.capacity, "capacity", 0, "Queue capacity, 0 for unbounded (lockfree, channel and sharded need one)")
	f.DurationVar(&e.timeout, "timeout", 0, "Cancel a run after this long, 0 to disable")
	f.DurationVar(&e.stall, "stall", 0, "Cancel a run that makes no progress for this long, 0 to disable")
	f.Var(&e.cancelMode, "cancel-mode", "Cancellation flag: atomic or context")
}

func (e *experimentFlags) config() (prodcons.Config, error) {
	perConsumer := e.consumerItems
	if perConsumer == 0 && e.consumers > 0 {
		total := e.producers * e.items
		if total%e.consumers != 0 {
			return prodcons.Config{}, fmt.Errorf("%d producers x %d items does not split evenly over %d consumers; set --consumer-items",
				e.producers, e.items, e.consumers)
		}
		perConsumer = total / e.consumers
	}

	cfg := prodcons.Config{
		Producers:        e.producers,
		Consumers:        e.consumers,
		Variant:          e.variant,
		ItemsPerProducer: e.items,
		ItemsPerConsumer: perConsumer,
		Capacity:         e.capacity,
		Timeout:          e.timeout,
		StallTimeout:     e.stall,
		CancelMode:       e.cancelMode,
		Logger:           logger,
	}
	return cfg, cfg.Validate()
}

func printConfig(cfg prodcons.Config) {
	fmt.Printf("  variant:     %s\n", cfg.Variant)
	fmt.Printf("  producers:   %d x %d items\n", cfg.Producers, cfg.ItemsPerProducer)
	fmt.Printf("  consumers:   %d x %d items\n", cfg.Consumers, cfg.ItemsPerConsumer)
	if cfg.Capacity > 0 {
		fmt.Printf("  capacity:    %d\n", cfg.Capacity)
	} else {
		fmt.Printf("  capacity:    unbounded\n")
	}
	fmt.Printf("  cancel mode: %s\n", cfg.CancelMode)
	if cfg.Timeout > 0 {
		fmt.Printf("  timeout:     %v\n", cfg.Timeout)
	}
	if cfg.StallTimeout > 0 {
		fmt.Printf("  stall:       %v\n", cfg.StallTimeout)
	}
}
