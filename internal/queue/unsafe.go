package queue

// Unsafe is a FIFO queue with no synchronization.
//
// WARNING: concurrent use is a data race. Unsafe exists to measure what that
// race costs; it is not a bug to fix.
//
// A plain (non-atomic) in-flight counter gives best-effort detection of two
// structural operations overlapping, the same way an unsynchronized
// modification count would. It does not serialize anything: a fault is
// reported only when the overlap happens to be observed.
type Unsafe[T any] struct {
	items    *ring[T]
	inflight int
	closed   bool
}

// NewUnsafe creates an Unsafe queue. capacity 0 means unbounded.
func NewUnsafe[T any](capacity int) *Unsafe[T] {
	return &Unsafe[T]{items: newRing[T](capacity)}
}

// Enqueue appends v. It never waits: a full bounded queue returns ErrFull.
// After Close it returns ErrClosed.
func (q *Unsafe[T]) Enqueue(v T) (err error) {
	if q.closed {
		return ErrClosed
	}
	defer q.guard("enqueue", &err)()
	if !q.items.push(v) {
		return ErrFull
	}
	return nil
}

// TryEnqueue is Enqueue; Unsafe never waits.
func (q *Unsafe[T]) TryEnqueue(v T) error {
	return q.Enqueue(v)
}

// Remove removes the oldest item without checking for emptiness first.
// An empty queue at this point means another consumer won the race.
func (q *Unsafe[T]) Remove() (v T, err error) {
	defer q.guard("remove", &err)()
	v, ok := q.items.pop()
	if !ok {
		return v, &ConcurrentAccessError{Op: "remove", Err: ErrEmpty}
	}
	return v, nil
}

// TryDequeue checks IsEmpty and then calls Remove, as two separate steps.
func (q *Unsafe[T]) TryDequeue() (T, error) {
	if q.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}
	return q.Remove()
}

func (q *Unsafe[T]) IsEmpty() bool { return q.items.empty() }

func (q *Unsafe[T]) Len() int {
	n := q.items.len()
	if n < 0 {
		return 0
	}
	return n
}

func (q *Unsafe[T]) Cap() int { return q.items.limit }

// Close marks the queue closed. Nothing waits on an Unsafe queue, so there
// is nobody to wake; pollers see it through Closed.
func (q *Unsafe[T]) Close() { q.closed = true }

// Closed reports whether Close has been called. Items enqueued before Close
// can still be removed.
func (q *Unsafe[T]) Closed() bool { return q.closed }

// guard brackets a structural operation. It turns an observed overlap or a
// panic caused by torn state into a *ConcurrentAccessError stored in *errp.
func (q *Unsafe[T]) guard(op string, errp *error) func() {
	q.inflight++
	overlapped := q.inflight != 1
	return func() {
		q.inflight--
		if r := recover(); r != nil {
			*errp = &ConcurrentAccessError{Op: op, Panic: r}
			return
		}
		if overlapped && *errp == nil {
			*errp = &ConcurrentAccessError{Op: op}
		}
	}
}
