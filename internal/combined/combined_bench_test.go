package combined_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
	"github.com/randomizedcoder/prodcons-bench/internal/queue"
	"github.com/randomizedcoder/prodcons-bench/internal/tick"
)

// Sink variables
var sinkInt int
var sinkBool bool

const benchInterval = time.Hour

// benchVariants are the variants a single goroutine may drive, with a
// capacity every one of them accepts.
var benchVariants = []queue.Variant{
	queue.VariantLocked,
	queue.VariantLockFree,
	queue.VariantChannel,
	queue.VariantUnsafe,
}

func mustBuild(b *testing.B, v queue.Variant, capacity int) queue.Queue[int] {
	b.Helper()
	q, err := queue.Build[int](v, queue.Options{Capacity: capacity, Producers: 1})
	if err != nil {
		b.Fatal(err)
	}
	return q
}

// ============================================================================
// Loop body: cancel check + queue operation
// ============================================================================

// BenchmarkLoopBody measures one producer iteration followed by one consumer
// iteration on the same goroutine: check the flag, enqueue, check the flag,
// dequeue.
func BenchmarkLoopBody(b *testing.B) {
	for _, mode := range []cancel.Mode{cancel.ModeAtomic, cancel.ModeContext} {
		for _, v := range benchVariants {
			b.Run(mode.String()+"/"+v.String(), func(b *testing.B) {
				flag := cancel.New(mode, context.Background())
				q := mustBuild(b, v, 1024)
				defer q.Close()

				b.ReportAllocs()
				b.ResetTimer()

				var val int
				var cancelled bool
				for i := 0; i < b.N; i++ {
					cancelled = flag.Done()
					_ = q.TryEnqueue(i)
					cancelled = cancelled || flag.Done()
					val, _ = q.TryDequeue()
				}
				sinkInt = val
				sinkBool = cancelled
			})
		}
	}
}

// BenchmarkLoopBody_Progress adds the progress-ticker check a trials loop
// makes on top of each iteration.
func BenchmarkLoopBody_Progress(b *testing.B) {
	tickers := []struct {
		name string
		new  func() tick.Ticker
	}{
		{"std", func() tick.Ticker { return tick.NewTicker(benchInterval) }},
		{"atomic", func() tick.Ticker { return tick.NewAtomicTicker(benchInterval) }},
	}

	for _, tc := range tickers {
		b.Run(tc.name, func(b *testing.B) {
			flag := cancel.NewAtomic()
			ticker := tc.new()
			defer ticker.Stop()
			q := queue.NewLocked[int](1024)

			// Pre-fill queue
			for i := 0; i < 512; i++ {
				_ = q.Enqueue(i)
			}

			b.ReportAllocs()
			b.ResetTimer()

			var val int
			var cancelled, ticked bool
			for i := 0; i < b.N; i++ {
				cancelled = flag.Done()
				ticked = ticker.Tick()
				val, _ = q.TryDequeue()
				_ = q.TryEnqueue(val) // Recycle
			}
			sinkInt = val
			sinkBool = cancelled || ticked
		})
	}
}

// ============================================================================
// Pipeline benchmarks (1 producer -> 1 consumer)
// ============================================================================

// BenchmarkPipeline_SPSC runs the benchmark goroutine as the producer and one
// blocking consumer goroutine, for every variant with a blocking Dequeue.
func BenchmarkPipeline_SPSC(b *testing.B) {
	for _, v := range []queue.Variant{queue.VariantLocked, queue.VariantLockFree, queue.VariantChannel} {
		b.Run(v.String(), func(b *testing.B) {
			q := mustBuild(b, v, 1024)
			deq := q.(queue.Blocking[int])
			consumerDone := make(chan int)

			go func() {
				n := 0
				for {
					if _, err := deq.Dequeue(); err != nil {
						consumerDone <- n
						return
					}
					n++
				}
			}()

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if err := q.Enqueue(i); err != nil {
					b.Fatal(err)
				}
			}

			q.Close()
			got := <-consumerDone
			b.StopTimer()
			if got != b.N {
				b.Fatalf("consumer took %d items, want %d", got, b.N)
			}
		})
	}
}

// BenchmarkPipeline_Cancel measures how quickly a blocked consumer is
// released: start a consumer on an empty queue, cancel, close.
func BenchmarkPipeline_Cancel(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		flag := cancel.NewAtomic()
		q := queue.NewLocked[int](0)
		done := make(chan error)

		go func() {
			for !flag.Done() {
				if _, err := q.Dequeue(); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()

		flag.Cancel()
		q.Close()
		if err := <-done; err != nil && !errors.Is(err, queue.ErrClosed) {
			b.Fatal(err)
		}
	}
}

func runtimeProcs() int {
	return runtime.GOMAXPROCS(0)
}
