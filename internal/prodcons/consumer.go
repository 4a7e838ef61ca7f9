package prodcons

import (
	"fmt"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
	"github.com/randomizedcoder/prodcons-bench/internal/queue"
)

// newConsumer returns a task that takes target items from q. It blocks in
// Dequeue when q supports it and busy-polls IsEmpty/Remove otherwise. A
// poller stops once the queue is empty and closed.
func newConsumer(id int, target int64, run cancel.Canceler, q queue.Queue[Item], sink func(int, Item)) (*task, error) {
	if sink == nil {
		sink = func(int, Item) {}
	}

	switch q := q.(type) {
	case queue.Blocking[Item]:
		return newTask(RoleConsumer, id, target, run, func(t *task) error {
			for n := int64(0); n < t.target; n++ {
				if t.cancelled() {
					return errStopped
				}
				it, err := q.Dequeue()
				if err != nil {
					return err
				}
				t.count.Add(1)
				sink(t.id, it)
			}
			return nil
		}), nil

	case queue.Polling[Item]:
		return newTask(RoleConsumer, id, target, run, func(t *task) error {
			for n := int64(0); n < t.target; {
				if t.cancelled() {
					return errStopped
				}
				// The check and the removal are two steps; other consumers
				// can run in between.
				if !q.IsEmpty() {
					it, err := q.Remove()
					if err != nil {
						return err
					}
					n++
					t.count.Add(1)
					sink(t.id, it)
				} else if q.Closed() {
					return queue.ErrClosed
				}
			}
			return nil
		}), nil

	default:
		return nil, fmt.Errorf("%w: %T supports neither Dequeue nor Remove", ErrInvalidConfig, q)
	}
}
