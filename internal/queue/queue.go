// Package queue provides the shared FIFO queues benchmarked by prodcons.
//
// Every variant implements Queue. The safe variants also implement Blocking,
// whose Dequeue suspends the caller while the queue is empty:
//   - Locked: one mutex and two condition variables over a ring buffer
//   - LockFree: lock-free CAS queue from code.hybscloud.com/lfq
//   - Channel: buffered Go channel
//   - Sharded: go-lock-free-ring sharded MPSC ring, one shard per producer
//
// # Unsafe (IMPORTANT)
//
// Unsafe is the same ring buffer as Locked with no synchronization at all.
// It implements Polling instead of Blocking: consumers must check IsEmpty and
// then call Remove, two steps that race with every other consumer.
//
// Concurrent use of Unsafe is a data race on purpose. Lost items, duplicated
// items and ConcurrentAccessError are all expected outcomes.
package queue

// Enqueuer is the producer side of a queue.
type Enqueuer[T any] interface {
	// Enqueue appends v.
	// Bounded safe queues suspend while full; Unsafe returns ErrFull instead.
	Enqueue(v T) error
}

// Queue is a FIFO shared by the producers and consumers of one run.
type Queue[T any] interface {
	Enqueuer[T]

	// TryEnqueue appends v without suspending.
	// Returns ErrFull if the queue is bounded and full.
	TryEnqueue(v T) error

	// TryDequeue removes the oldest item without suspending.
	// Returns ErrEmpty if the queue is empty.
	TryDequeue() (T, error)

	// IsEmpty reports whether the queue holds no items. Advisory only.
	IsEmpty() bool

	// Len returns the number of queued items. Advisory only.
	Len() int

	// Cap returns the capacity, or 0 if the queue is unbounded.
	Cap() int

	// Close wakes every suspended caller. Dequeue keeps returning the
	// remaining items and then ErrClosed; Enqueue returns ErrClosed.
	// Safe to call multiple times.
	Close()
}

// Blocking is implemented by queues whose Dequeue suspends while empty.
type Blocking[T any] interface {
	Queue[T]

	// Dequeue removes the oldest item, suspending while the queue is empty.
	// Returns ErrClosed once the queue is closed and drained.
	Dequeue() (T, error)
}

// Polling is implemented by queues that only support check-then-act removal.
type Polling[T any] interface {
	Queue[T]

	// Remove removes the oldest item. Callers check IsEmpty first.
	// Removing from an empty queue returns a *ConcurrentAccessError.
	Remove() (T, error)

	// Closed reports whether Close has been called. A poller that finds
	// the queue both empty and closed will never see another item.
	Closed() bool
}

// Scoped is implemented by queues that hand each producer its own
// enqueue handle.
type Scoped[T any] interface {
	Queue[T]

	// Producer returns the enqueue handle for producer id.
	Producer(id int) Enqueuer[T]
}

// EnqueuerFor returns the enqueue handle producer id should use on q.
func EnqueuerFor[T any](q Queue[T], id int) Enqueuer[T] {
	if s, ok := q.(Scoped[T]); ok {
		return s.Producer(id)
	}
	return q
}
