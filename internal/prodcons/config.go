package prodcons

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
	"github.com/randomizedcoder/prodcons-bench/internal/queue"
)

// Item is the payload moved through the queue. Its value is irrelevant to
// correctness.
type Item int64

var (
	// ErrInvalidConfig wraps every Config validation failure.
	ErrInvalidConfig = errors.New("prodcons: invalid config")

	// ErrUnbalanced means producers and consumers target different totals,
	// which would leave consumers starved or items behind.
	ErrUnbalanced = errors.New("prodcons: produced and consumed totals differ")

	// ErrCancelled is the cause recorded by Experiment.Cancel.
	ErrCancelled = errors.New("prodcons: experiment cancelled")

	// ErrStalled is the cause recorded when the watchdog sees no progress
	// for StallTimeout.
	ErrStalled = errors.New("prodcons: experiment stalled")

	// ErrPanic wraps a value recovered from a task goroutine.
	ErrPanic = errors.New("prodcons: task panicked")
)

// Config describes one experiment run.
type Config struct {
	Producers int
	Consumers int
	Variant   queue.Variant

	// ItemsPerProducer and ItemsPerConsumer are the per-task targets.
	// Producers*ItemsPerProducer must equal Consumers*ItemsPerConsumer.
	ItemsPerProducer int
	ItemsPerConsumer int

	// Capacity bounds the queue; 0 means unbounded where the variant allows.
	Capacity int

	// Timeout cancels the run after this long. 0 disables it.
	Timeout time.Duration

	// StallTimeout cancels the run when no task makes progress for this long.
	// 0 disables the watchdog.
	StallTimeout time.Duration

	// CancelMode selects how tasks poll for cancellation. Zero is atomic.
	CancelMode cancel.Mode

	// Source generates item seq of producer id. nil draws pseudorandom items.
	Source func(producer int, seq int64) Item

	// Sink observes every item a consumer takes. nil discards them.
	// Called concurrently from every consumer.
	Sink func(consumer int, it Item)

	// Logger receives run-level events. nil discards them.
	Logger *slog.Logger
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch {
	case c.Producers < 1:
		return fmt.Errorf("%w: producers must be >= 1, got %d", ErrInvalidConfig, c.Producers)
	case c.Consumers < 1:
		return fmt.Errorf("%w: consumers must be >= 1, got %d", ErrInvalidConfig, c.Consumers)
	case c.ItemsPerProducer < 0 || c.ItemsPerConsumer < 0:
		return fmt.Errorf("%w: item targets must be >= 0, got %d/%d",
			ErrInvalidConfig, c.ItemsPerProducer, c.ItemsPerConsumer)
	case c.Timeout < 0 || c.StallTimeout < 0:
		return fmt.Errorf("%w: timeouts must be >= 0", ErrInvalidConfig)
	case c.CancelMode != cancel.ModeAtomic && c.CancelMode != cancel.ModeContext:
		return fmt.Errorf("%w: unknown cancel mode %v", ErrInvalidConfig, c.CancelMode)
	}

	produced := int64(c.Producers) * int64(c.ItemsPerProducer)
	consumed := int64(c.Consumers) * int64(c.ItemsPerConsumer)
	if produced != consumed {
		return fmt.Errorf("%w: %w: %d producers x %d != %d consumers x %d",
			ErrInvalidConfig, ErrUnbalanced,
			c.Producers, c.ItemsPerProducer, c.Consumers, c.ItemsPerConsumer)
	}

	if c.Variant == queue.VariantSharded && c.Consumers != 1 {
		return fmt.Errorf("%w: %s queue supports exactly one consumer, got %d",
			ErrInvalidConfig, c.Variant, c.Consumers)
	}
	if err := c.queueOptions().Validate(c.Variant); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ExpectedItems is the number of items a fully successful run processes.
func (c Config) ExpectedItems() int64 {
	return int64(c.Producers) * int64(c.ItemsPerProducer)
}

func (c Config) queueOptions() queue.Options {
	return queue.Options{Capacity: c.Capacity, Producers: c.Producers}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
