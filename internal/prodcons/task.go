package prodcons

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
	"github.com/randomizedcoder/prodcons-bench/internal/queue"
)

// State is a task's lifecycle state.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StateSucceeded
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateRunning:
		return "RUNNING"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateFailed:
		return "FAILED"
	case StateCancelled:
		return "CANCELLED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Terminal reports whether s is one of the final states.
func (s State) Terminal() bool {
	return s >= StateSucceeded
}

// Role tells producers from consumers.
type Role int

const (
	RoleProducer Role = iota
	RoleConsumer
)

func (r Role) String() string {
	if r == RoleConsumer {
		return "consumer"
	}
	return "producer"
}

// TaskError is the failure of one task.
type TaskError struct {
	Role Role
	ID   int
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("prodcons: %s %d: %v", e.Role, e.ID, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// Report is the outcome of one task.
type Report struct {
	Role    Role
	ID      int
	State   State
	Count   int64
	Target  int64
	Elapsed time.Duration
	Err     error // set only when State is StateFailed
}

// Task is a cancellable unit of work running on its own goroutine.
type Task interface {
	// Start launches the task. Calls after the first are no-ops.
	Start()
	// Wait blocks until the task is terminal and returns its report.
	Wait() Report
	// Cancel asks the task to stop at its next loop iteration.
	Cancel()
	// State returns the current lifecycle state.
	State() State
}

// errStopped is returned by a loop that observed cancellation.
var errStopped = errors.New("prodcons: stop requested")

// task runs loop once and records how it ended.
type task struct {
	role       Role
	id         int
	target     int64
	resolution time.Duration
	loop       func(t *task) error

	run  cancel.Canceler // shared by every task in the experiment
	stop atomic.Bool     // this task only

	state atomic.Int32
	count atomic.Int64

	once   sync.Once
	done   chan struct{}
	report Report
}

var _ Task = (*task)(nil)

func newTask(role Role, id int, target int64, run cancel.Canceler, loop func(*task) error) *task {
	res := time.Microsecond
	if role == RoleConsumer {
		res = time.Millisecond
	}
	return &task{
		role:       role,
		id:         id,
		target:     target,
		resolution: res,
		loop:       loop,
		run:        run,
		done:       make(chan struct{}),
	}
}

func (t *task) Start() {
	t.once.Do(func() {
		t.state.Store(int32(StateRunning))
		go t.exec()
	})
}

func (t *task) Wait() Report {
	<-t.done
	return t.report
}

func (t *task) Cancel() {
	t.stop.Store(true)
}

func (t *task) State() State {
	return State(t.state.Load())
}

// Count is the number of items handled so far.
func (t *task) Count() int64 {
	return t.count.Load()
}

func (t *task) cancelled() bool {
	return t.stop.Load() || t.run.Done()
}

func (t *task) exec() {
	defer close(t.done)

	start := time.Now()
	err := t.safeLoop()
	elapsed := time.Since(start).Truncate(t.resolution)

	state := StateSucceeded
	switch {
	case err == nil:
	case errors.Is(err, errStopped), errors.Is(err, queue.ErrClosed):
		state = StateCancelled
		err = nil
	default:
		state = StateFailed
		err = &TaskError{Role: t.role, ID: t.id, Err: err}
	}

	t.report = Report{
		Role:    t.role,
		ID:      t.id,
		State:   state,
		Count:   t.count.Load(),
		Target:  t.target,
		Elapsed: elapsed,
		Err:     err,
	}
	t.state.Store(int32(state))
}

func (t *task) safeLoop() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return t.loop(t)
}
