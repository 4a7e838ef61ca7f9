package queue

import "sync"

// Channel wraps a buffered channel as a Blocking queue.
//
// This is the standard library approach. Closing uses a separate done
// channel so that producers never send on a closed channel.
type Channel[T any] struct {
	ch   chan T
	done chan struct{}
	once sync.Once
}

// NewChannel creates a Channel queue with the specified buffer size.
func NewChannel[T any](size int) *Channel[T] {
	return &Channel[T]{
		ch:   make(chan T, size),
		done: make(chan struct{}),
	}
}

// Enqueue adds an item, blocking while the buffer is full.
func (q *Channel[T]) Enqueue(v T) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}
	select {
	case q.ch <- v:
		return nil
	case <-q.done:
		return ErrClosed
	}
}

// TryEnqueue adds an item without blocking.
func (q *Channel[T]) TryEnqueue(v T) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}
	select {
	case q.ch <- v:
		return nil
	default:
		return ErrFull
	}
}

// Dequeue removes an item, blocking while the buffer is empty.
func (q *Channel[T]) Dequeue() (T, error) {
	select {
	case v := <-q.ch:
		return v, nil
	case <-q.done:
		// Drain what is left before reporting closed.
		select {
		case v := <-q.ch:
			return v, nil
		default:
			var zero T
			return zero, ErrClosed
		}
	}
}

// TryDequeue removes an item without blocking.
func (q *Channel[T]) TryDequeue() (T, error) {
	select {
	case v := <-q.ch:
		return v, nil
	default:
		var zero T
		return zero, ErrEmpty
	}
}

func (q *Channel[T]) IsEmpty() bool { return len(q.ch) == 0 }

// Len returns the current number of items in the queue.
func (q *Channel[T]) Len() int { return len(q.ch) }

// Cap returns the capacity of the queue.
func (q *Channel[T]) Cap() int { return cap(q.ch) }

func (q *Channel[T]) Close() {
	q.once.Do(func() { close(q.done) })
}
