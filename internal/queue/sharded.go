package queue

import (
	"fmt"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	lfring "github.com/randomizedcoder/go-lock-free-ring"
)

// Sharded is a multi-producer single-consumer queue backed by
// go-lock-free-ring's ShardedRing.
//
// Each producer writes to its own shard through the handle returned by
// Producer, so shards never see two writers. Order is FIFO per producer only.
//
// SINGLE CONSUMER: only one goroutine may call Dequeue or TryDequeue.
type Sharded[T any] struct {
	r        *lfring.ShardedRing
	shards   int
	capacity int
	count    atomix.Int64
	closed   atomix.Bool
}

// NewSharded creates a Sharded queue with at least one shard per producer.
// The shard count is rounded up to a power of 2, as is each shard's share
// of capacity.
func NewSharded[T any](capacity, producers int) (*Sharded[T], error) {
	shards := 1
	for shards < producers {
		shards <<= 1
	}
	per := 1
	for per*shards < capacity {
		per <<= 1
	}
	total := per * shards
	r, err := lfring.NewShardedRing(uint64(total), uint64(shards))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	return &Sharded[T]{r: r, shards: shards, capacity: total}, nil
}

type shardWriter[T any] struct {
	q  *Sharded[T]
	id uint64
}

func (w shardWriter[T]) Enqueue(v T) error {
	backoff := iox.Backoff{}
	for {
		err := w.q.write(w.id, v)
		if err != ErrFull {
			return err
		}
		backoff.Wait()
	}
}

// Producer returns the handle that writes to shard id.
func (q *Sharded[T]) Producer(id int) Enqueuer[T] {
	return shardWriter[T]{q: q, id: uint64(id % q.shards)}
}

// Enqueue appends v to shard 0. Producers should use their own handle.
func (q *Sharded[T]) Enqueue(v T) error {
	return shardWriter[T]{q: q}.Enqueue(v)
}

// TryEnqueue appends v to shard 0 or returns ErrFull.
func (q *Sharded[T]) TryEnqueue(v T) error {
	return q.write(0, v)
}

func (q *Sharded[T]) write(shard uint64, v T) error {
	if q.closed.LoadAcquire() {
		return ErrClosed
	}
	if !q.r.Write(shard, v) {
		return ErrFull
	}
	q.count.Add(1)
	return nil
}

// Dequeue removes an item, backing off while every shard is empty.
func (q *Sharded[T]) Dequeue() (T, error) {
	backoff := iox.Backoff{}
	for {
		v, err := q.TryDequeue()
		if err != ErrEmpty {
			return v, err
		}
		if q.closed.LoadAcquire() {
			if v, err = q.TryDequeue(); err == nil {
				return v, nil
			}
			return v, ErrClosed
		}
		backoff.Wait()
	}
}

// TryDequeue removes an item or returns ErrEmpty.
func (q *Sharded[T]) TryDequeue() (T, error) {
	var zero T
	raw, ok := q.r.TryRead()
	if !ok {
		return zero, ErrEmpty
	}
	q.count.Add(-1)
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("queue: sharded ring returned %T", raw)
	}
	return v, nil
}

func (q *Sharded[T]) IsEmpty() bool { return q.Len() == 0 }

func (q *Sharded[T]) Len() int {
	if n := q.count.Load(); n > 0 {
		return int(n)
	}
	return 0
}

func (q *Sharded[T]) Cap() int { return q.capacity }

func (q *Sharded[T]) Close() { q.closed.StoreRelease(true) }
