package queue

import "sync"

// Locked is a linearizable FIFO queue.
//
// Every operation runs under one mutex. Dequeue waits on a condition variable
// while the queue is empty; Enqueue waits on a second one while a bounded
// queue is full.
type Locked[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    *ring[T]
	closed   bool
}

// NewLocked creates a Locked queue. capacity 0 means unbounded.
func NewLocked[T any](capacity int) *Locked[T] {
	q := &Locked[T]{items: newRing[T](capacity)}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends v, waiting while a bounded queue is full.
func (q *Locked[T]) Enqueue(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.items.full() {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrClosed
	}
	q.items.push(v)
	q.notEmpty.Signal()
	return nil
}

// TryEnqueue appends v without waiting.
func (q *Locked[T]) TryEnqueue(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	if !q.items.push(v) {
		return ErrFull
	}
	q.notEmpty.Signal()
	return nil
}

// Dequeue removes the oldest item, waiting while the queue is empty.
func (q *Locked[T]) Dequeue() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.items.empty() {
		q.notEmpty.Wait()
	}
	v, ok := q.items.pop()
	if !ok {
		return v, ErrClosed
	}
	q.notFull.Signal()
	return v, nil
}

// TryDequeue removes the oldest item without waiting.
func (q *Locked[T]) TryDequeue() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	v, ok := q.items.pop()
	if !ok {
		return v, ErrEmpty
	}
	q.notFull.Signal()
	return v, nil
}

func (q *Locked[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.empty()
}

func (q *Locked[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.len()
}

func (q *Locked[T]) Cap() int { return q.items.limit }

// Close wakes every waiting producer and consumer.
func (q *Locked[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}
