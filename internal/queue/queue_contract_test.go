package queue_test

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randomizedcoder/prodcons-bench/internal/queue"
)

// waitTimeout fails the test instead of hanging when wg never completes.
func waitTimeout(t *testing.T, wg *sync.WaitGroup, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("goroutines still running after %v", d)
	}
}

// TestSafe_SPSC_FIFO tests one producer goroutine and one consumer goroutine
// on every safe variant: dequeue order must equal enqueue order.
func TestSafe_SPSC_FIFO(t *testing.T) {
	for _, v := range blockingVariants() {
		t.Run(v.String(), func(t *testing.T) {
			skipRaceBlind(t, v)
			q := build(t, v, 64).(queue.Blocking[int])
			count := 10000
			done := make(chan struct{})

			go func() {
				defer close(done)
				for i := 0; i < count; i++ {
					if err := q.Enqueue(i); err != nil {
						t.Errorf("Enqueue(%d): %v", i, err)
						return
					}
				}
			}()

			for expected := 0; expected < count; expected++ {
				val, err := q.Dequeue()
				if err != nil {
					t.Fatalf("Dequeue(): %v", err)
				}
				if val != expected {
					t.Fatalf("FIFO violation: expected %d, got %d", expected, val)
				}
			}
			<-done
		})
	}
}

// TestSafe_MPMC_ExactlyOnce checks that every item enqueued by several
// producers is dequeued exactly once. Items carry producerID*100000 + seq.
func TestSafe_MPMC_ExactlyOnce(t *testing.T) {
	const perProducer = 5000

	for _, v := range blockingVariants() {
		t.Run(v.String(), func(t *testing.T) {
			skipRaceBlind(t, v)
			producers, consumers := 4, 4
			if v == queue.VariantSharded {
				consumers = 1
			}
			q, err := queue.Build[int](v, queue.Options{Capacity: 256, Producers: producers})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			bq := q.(queue.Blocking[int])

			total := producers * perProducer
			seen := make([]atomic.Int32, total)
			var wg sync.WaitGroup

			for p := 0; p < producers; p++ {
				wg.Add(1)
				go func(id int) {
					defer wg.Done()
					enq := queue.EnqueuerFor(q, id)
					for i := 0; i < perProducer; i++ {
						if err := enq.Enqueue(id*100000 + i); err != nil {
							t.Errorf("producer %d: %v", id, err)
							return
						}
					}
				}(p)
			}

			for c := 0; c < consumers; c++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < total/consumers; i++ {
						v, err := bq.Dequeue()
						if err != nil {
							t.Errorf("consumer: %v", err)
							return
						}
						id, seq := v/100000, v%100000
						if id < 0 || id >= producers || seq >= perProducer {
							t.Errorf("consumer: out-of-range value %d", v)
							continue
						}
						seen[id*perProducer+seq].Add(1)
					}
				}()
			}

			waitTimeout(t, &wg, 30*time.Second)

			for i := range seen {
				if n := seen[i].Load(); n != 1 {
					t.Fatalf("item %d seen %d times (expected 1)", i, n)
				}
			}
			if !q.IsEmpty() {
				t.Errorf("expected empty queue, Len() = %d", q.Len())
			}
		})
	}
}

// TestUnsafe_ConcurrentRemove_Faults races several check-then-remove
// consumers on a pre-filled Unsafe queue.
//
// This test intentionally violates thread safety. A fault is the expected
// outcome but not a guaranteed one: the goroutines may not overlap.
func TestUnsafe_ConcurrentRemove_Faults(t *testing.T) {
	if queue.RaceEnabled {
		t.Skip("skip: races on Unsafe on purpose")
	}
	if runtime.GOMAXPROCS(0) < 2 {
		t.Skip("skip: needs parallel goroutines")
	}

	q := queue.NewUnsafe[int](0)
	for i := 0; i < 100000; i++ {
		q.Enqueue(i)
	}

	var faults, removed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20000; j++ {
				if q.IsEmpty() {
					return
				}
				if _, err := q.Remove(); err != nil {
					if !errors.Is(err, queue.ErrConcurrentAccess) {
						t.Errorf("unexpected error: %v", err)
					}
					faults.Add(1)
					continue
				}
				removed.Add(1)
			}
		}()
	}
	waitTimeout(t, &wg, 10*time.Second)

	if faults.Load() > 0 || removed.Load()+int64(q.Len()) != 100000 {
		t.Logf("race observed: %d faults, %d removed, %d left", faults.Load(), removed.Load(), q.Len())
	} else {
		t.Log("No interference detected (goroutines may not have overlapped)")
	}
}

// TestUnsafe_SingleGoroutine_IsCorrect checks that Unsafe is a plain FIFO
// when only one goroutine touches it.
func TestUnsafe_SingleGoroutine_IsCorrect(t *testing.T) {
	q := queue.NewUnsafe[int](0)
	for i := 0; i < 1000; i++ {
		if err := q.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	for i := 0; i < 1000; i++ {
		if q.IsEmpty() {
			t.Fatalf("queue empty after %d removals", i)
		}
		v, err := q.Remove()
		if err != nil || v != i {
			t.Fatalf("Remove() = (%d, %v), want (%d, nil)", v, err, i)
		}
	}
}
