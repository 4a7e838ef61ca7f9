package queue

import "errors"

// ring is a growable FIFO ring buffer with no synchronization of its own.
//
// Locked guards it with a mutex. Unsafe uses it bare, so every field here
// may be read and written by several goroutines at once.
type ring[T any] struct {
	buf   []T
	mask  uint64
	head  uint64 // next slot to read
	tail  uint64 // next slot to write
	limit int    // 0 means unbounded
}

const minRingSize = 16

var errTornRing = errors.New("queue: ring indices torn (head passed tail)")

// newRing sizes the buffer to the next power of 2 of limit, or minRingSize
// when unbounded.
func newRing[T any](limit int) *ring[T] {
	size := minRingSize
	if limit > 0 {
		size = limit
	}
	n := uint64(1)
	for n < uint64(size) {
		n <<= 1
	}
	return &ring[T]{
		buf:   make([]T, n),
		mask:  n - 1,
		limit: limit,
	}
}

func (r *ring[T]) len() int {
	return int(r.tail - r.head)
}

// torn reports indices that no sequence of push and pop can produce: head
// past tail, or more items than slots. Only concurrent use of an
// unsynchronized ring gets there.
func (r *ring[T]) torn() bool {
	return r.tail-r.head > uint64(len(r.buf))
}

func (r *ring[T]) empty() bool {
	return r.tail == r.head
}

func (r *ring[T]) full() bool {
	return r.limit > 0 && r.len() >= r.limit
}

// push appends v, growing the buffer when unbounded.
// Returns false if the ring is bounded and full.
func (r *ring[T]) push(v T) bool {
	if r.torn() {
		panic(errTornRing)
	}
	if r.full() {
		return false
	}
	if r.tail-r.head == uint64(len(r.buf)) {
		r.grow()
	}
	r.buf[r.tail&r.mask] = v
	r.tail++
	return true
}

// pop removes the oldest item. Returns false if the ring is empty.
func (r *ring[T]) pop() (T, bool) {
	var zero T
	if r.empty() {
		return zero, false
	}
	if r.torn() {
		panic(errTornRing)
	}
	idx := r.head & r.mask
	v := r.buf[idx]
	r.buf[idx] = zero
	r.head++
	return v, true
}

func (r *ring[T]) grow() {
	n := uint64(len(r.buf)) << 1
	buf := make([]T, n)
	count := r.tail - r.head
	for i := uint64(0); i < count && i < n; i++ {
		j := r.head + i
		buf[j&(n-1)] = r.buf[j&r.mask]
	}
	r.buf = buf
	r.mask = n - 1
}
