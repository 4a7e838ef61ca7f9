package prodcons

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
	"github.com/randomizedcoder/prodcons-bench/internal/queue"
	"github.com/randomizedcoder/prodcons-bench/internal/tick"
)

// Progress is a snapshot of a running experiment.
type Progress struct {
	Produced int64
	Consumed int64
}

// Experiment is one started run.
type Experiment struct {
	cfg Config
	log *slog.Logger
	ctx context.Context

	q         queue.Queue[Item]
	flag      cancel.Canceler
	producers []*task
	consumers []*task

	watchdog  *tick.Watchdog
	stopAfter func() bool
	release   context.CancelFunc

	mu    sync.Mutex
	cause error

	start  time.Time
	once   sync.Once
	result Result
}

// Run executes one experiment and waits for it.
//
// A run with failed tasks returns its Result together with the joined task
// errors. A cancelled run returns a nil error; check Result.State and
// Result.Cause.
func Run(ctx context.Context, cfg Config) (Result, error) {
	e, err := Start(ctx, cfg)
	if err != nil {
		return Result{}, err
	}
	return e.Wait()
}

// Start validates cfg, builds the queue and launches every task.
// The caller must call Wait.
func Start(ctx context.Context, cfg Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	q, err := queue.Build[Item](cfg.Variant, cfg.queueOptions())
	if err != nil {
		return nil, err
	}

	release := context.CancelFunc(func() {})
	if cfg.Timeout > 0 {
		ctx, release = context.WithTimeout(ctx, cfg.Timeout)
	}

	e := &Experiment{
		cfg:     cfg,
		ctx:     ctx,
		log:     cfg.logger().With("variant", cfg.Variant.String()),
		q:       q,
		flag:    cancel.New(cfg.CancelMode, ctx),
		release: release,
	}

	for i := range cfg.Consumers {
		c, err := newConsumer(i, int64(cfg.ItemsPerConsumer), e.flag, q, cfg.Sink)
		if err != nil {
			release()
			return nil, err
		}
		e.consumers = append(e.consumers, c)
	}
	for i := range cfg.Producers {
		enq := queue.EnqueuerFor[Item](q, i)
		e.producers = append(e.producers, newProducer(i, int64(cfg.ItemsPerProducer), e.flag, enq, cfg.Source))
	}

	e.stopAfter = context.AfterFunc(ctx, func() {
		e.cancelWith(context.Cause(ctx))
	})

	e.log.Debug("experiment starting",
		"producers", cfg.Producers,
		"consumers", cfg.Consumers,
		"items_per_producer", cfg.ItemsPerProducer,
		"items_per_consumer", cfg.ItemsPerConsumer,
		"capacity", cfg.Capacity,
		"cancel_mode", cfg.CancelMode.String(),
	)

	e.start = time.Now()
	for _, c := range e.consumers {
		c.Start()
	}
	for _, p := range e.producers {
		p.Start()
	}

	// Once no more items can arrive, release consumers still waiting.
	go func() {
		for _, p := range e.producers {
			p.Wait()
		}
		e.q.Close()
	}()

	if cfg.StallTimeout > 0 {
		e.watchdog = tick.NewWatchdog(cfg.StallTimeout, e.progress, func() {
			e.log.Warn("experiment stalled", "stall_timeout", cfg.StallTimeout, "progress", e.progress())
			e.cancelWith(ErrStalled)
		})
		e.watchdog.Start()
	}
	return e, nil
}

// Cancel stops the run. Tasks end at their next loop iteration, and tasks
// waiting inside the queue are released by closing it.
func (e *Experiment) Cancel() {
	e.cancelWith(ErrCancelled)
}

func (e *Experiment) cancelWith(cause error) {
	if cause == nil {
		cause = ErrCancelled
	}
	e.mu.Lock()
	if e.cause == nil {
		e.cause = cause
	}
	e.mu.Unlock()

	if cc, ok := e.flag.(*cancel.ContextCanceler); ok {
		cc.CancelCause(cause)
	} else {
		e.flag.Cancel()
	}
	e.q.Close()
}

// Tasks returns the producer tasks followed by the consumer tasks.
func (e *Experiment) Tasks() []Task {
	out := make([]Task, 0, len(e.producers)+len(e.consumers))
	for _, t := range e.producers {
		out = append(out, t)
	}
	for _, t := range e.consumers {
		out = append(out, t)
	}
	return out
}

// Progress returns the items produced and consumed so far.
func (e *Experiment) Progress() Progress {
	var p Progress
	for _, t := range e.producers {
		p.Produced += t.Count()
	}
	for _, t := range e.consumers {
		p.Consumed += t.Count()
	}
	return p
}

func (e *Experiment) progress() int64 {
	p := e.Progress()
	return p.Produced + p.Consumed
}

// Wait blocks until every task has ended and returns the aggregated result.
// It may be called more than once.
func (e *Experiment) Wait() (Result, error) {
	e.once.Do(func() {
		for _, t := range e.consumers {
			t.Wait()
		}
		for _, t := range e.producers {
			t.Wait()
		}
		wall := time.Since(e.start)
		cause := e.recordedCause()

		if e.watchdog != nil {
			e.watchdog.Stop()
		}
		e.stopAfter()
		e.release()
		if cc, ok := e.flag.(*cancel.ContextCanceler); ok {
			cc.Cancel()
		}

		e.result = e.aggregate(wall, cause)
		e.logResult()
	})
	return e.result, e.result.Err()
}

// recordedCause returns the first cancellation cause. A ContextCanceler
// sees its parent end before the AfterFunc bridge runs, so the parent's
// cause is read directly as well.
func (e *Experiment) recordedCause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cause == nil && e.ctx.Err() != nil {
		e.cause = context.Cause(e.ctx)
	}
	return e.cause
}

func (e *Experiment) aggregate(wall time.Duration, cause error) Result {
	r := Result{
		Variant:   e.cfg.Variant,
		Wall:      wall,
		Remaining: e.q.Len(),
		Tasks:     make([]Report, 0, len(e.producers)+len(e.consumers)),
	}

	var failed, cancelled bool
	add := func(rep Report) {
		r.Tasks = append(r.Tasks, rep)
		r.Elapsed = max(r.Elapsed, rep.Elapsed)
		switch rep.State {
		case StateFailed:
			failed = true
		case StateCancelled:
			cancelled = true
		}
	}
	for _, t := range e.producers {
		rep := t.Wait()
		r.Produced += rep.Count
		add(rep)
	}
	for _, t := range e.consumers {
		rep := t.Wait()
		r.Items += rep.Count
		add(rep)
	}

	switch {
	case failed:
		r.State = StateFailed
	case cancelled:
		r.State = StateCancelled
	default:
		r.State = StateSucceeded
	}

	if cancelled {
		r.Cause = cause
		if r.Cause == nil {
			r.Cause = ErrCancelled
		}
	}
	return r
}

func (e *Experiment) logResult() {
	r := e.result
	for _, rep := range r.Failed() {
		e.log.Warn("task failed", "role", rep.Role.String(), "id", rep.ID, "count", rep.Count, "err", rep.Err)
	}
	e.log.Debug("experiment finished",
		"state", r.State.String(),
		"items", r.Items,
		"produced", r.Produced,
		"remaining", r.Remaining,
		"elapsed", r.Elapsed,
		"wall", r.Wall,
		"cause", r.Cause,
	)
}
