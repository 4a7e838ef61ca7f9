package prodcons

import (
	"errors"
	"time"

	"github.com/randomizedcoder/prodcons-bench/internal/queue"
)

// Result aggregates every task of one run.
type Result struct {
	Variant queue.Variant

	// Items is the total consumed. Produced is the total enqueued.
	Items    int64
	Produced int64

	// Remaining is what was left in the queue when every task had ended.
	Remaining int

	// Elapsed is the slowest task's elapsed time. Wall covers the whole run
	// including setup and join.
	Elapsed time.Duration
	Wall    time.Duration

	State State

	// Cause is why the run was cancelled. nil unless some task was
	// cancelled.
	Cause error

	Tasks []Report
}

// Failed returns the reports of failed tasks.
func (r Result) Failed() []Report {
	var out []Report
	for _, rep := range r.Tasks {
		if rep.State == StateFailed {
			out = append(out, rep)
		}
	}
	return out
}

// Err joins every task failure. nil when no task failed.
func (r Result) Err() error {
	var errs []error
	for _, rep := range r.Failed() {
		errs = append(errs, rep.Err)
	}
	return errors.Join(errs...)
}

// Anomalous reports whether the run deviated from a clean success of
// expected items.
func (r Result) Anomalous(expected int64) bool {
	return r.State != StateSucceeded || r.Items != expected || r.Produced != expected
}
