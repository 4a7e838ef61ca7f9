package prodcons

import (
	"errors"

	"code.hybscloud.com/spin"
	"github.com/valyala/fastrand"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
	"github.com/randomizedcoder/prodcons-bench/internal/queue"
)

// newProducer returns a task that enqueues target items through enq.
func newProducer(id int, target int64, run cancel.Canceler, enq queue.Enqueuer[Item], source func(int, int64) Item) *task {
	next := source
	if next == nil {
		var rng fastrand.RNG
		rng.Seed(fastrand.Uint32() ^ uint32(id+1))
		next = func(int, int64) Item { return Item(rng.Uint32()) }
	}

	return newTask(RoleProducer, id, target, run, func(t *task) error {
		var sw spin.Wait
		for seq := int64(0); seq < t.target; seq++ {
			if t.cancelled() {
				return errStopped
			}
			it := next(t.id, seq)
			for {
				err := enq.Enqueue(it)
				if err == nil {
					break
				}
				if !errors.Is(err, queue.ErrFull) {
					return err
				}
				if t.cancelled() {
					return errStopped
				}
				sw.Once()
			}
			sw.Reset()
			t.count.Add(1)
		}
		return nil
	})
}
