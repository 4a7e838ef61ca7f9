package queue

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// LockFree is a bounded linearizable queue built on lfq's CAS-based MPMC
// algorithm (per-slot sequence numbers, n slots).
//
// lfq never blocks, so Enqueue and Dequeue suspend with iox.Backoff between
// attempts: the caller sleeps with growing intervals instead of spinning.
type LockFree[T any] struct {
	q      *lfq.MPMCSeq[T]
	count  atomix.Int64
	closed atomix.Bool
}

// NewLockFree creates a LockFree queue.
// Capacity rounds up to the next power of 2 and must be at least 2.
func NewLockFree[T any](capacity int) *LockFree[T] {
	return &LockFree[T]{q: lfq.NewMPMCSeq[T](capacity)}
}

// Enqueue appends v, backing off while the queue is full.
func (q *LockFree[T]) Enqueue(v T) error {
	backoff := iox.Backoff{}
	for {
		if q.closed.LoadAcquire() {
			return ErrClosed
		}
		err := q.q.Enqueue(&v)
		if err == nil {
			q.count.Add(1)
			return nil
		}
		if !lfq.IsWouldBlock(err) {
			return err
		}
		backoff.Wait()
	}
}

// TryEnqueue appends v or returns ErrFull.
func (q *LockFree[T]) TryEnqueue(v T) error {
	if q.closed.LoadAcquire() {
		return ErrClosed
	}
	if err := q.q.Enqueue(&v); err != nil {
		if lfq.IsWouldBlock(err) {
			return ErrFull
		}
		return err
	}
	q.count.Add(1)
	return nil
}

// Dequeue removes the oldest item, backing off while the queue is empty.
func (q *LockFree[T]) Dequeue() (T, error) {
	backoff := iox.Backoff{}
	for {
		v, err := q.TryDequeue()
		if err == nil || !IsWouldBlock(err) {
			return v, err
		}
		if q.closed.LoadAcquire() {
			// One more attempt: items enqueued before Close still belong
			// to consumers.
			if v, err = q.TryDequeue(); err == nil {
				return v, nil
			}
			return v, ErrClosed
		}
		backoff.Wait()
	}
}

// TryDequeue removes the oldest item or returns ErrEmpty.
func (q *LockFree[T]) TryDequeue() (T, error) {
	v, err := q.q.Dequeue()
	if err != nil {
		if lfq.IsWouldBlock(err) {
			return v, ErrEmpty
		}
		return v, err
	}
	q.count.Add(-1)
	return v, nil
}

func (q *LockFree[T]) IsEmpty() bool { return q.Len() == 0 }

// Len is approximate: the counter trails the queue by one operation per
// in-flight caller.
func (q *LockFree[T]) Len() int {
	if n := q.count.Load(); n > 0 {
		return int(n)
	}
	return 0
}

func (q *LockFree[T]) Cap() int { return q.q.Cap() }

func (q *LockFree[T]) Close() { q.closed.StoreRelease(true) }
