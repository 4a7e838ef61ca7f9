package tick_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/randomizedcoder/prodcons-bench/internal/tick"
)

// Long interval so Tick() returns false (we're measuring check overhead)
const benchInterval = time.Hour

// Sink variable to prevent compiler from eliminating benchmark loops
var sinkTick bool

var tickers = []struct {
	name string
	new  func(time.Duration) tick.Ticker
}{
	{"std", func(d time.Duration) tick.Ticker { return tick.NewTicker(d) }},
	{"atomic", func(d time.Duration) tick.Ticker { return tick.NewAtomicTicker(d) }},
}

// Direct type benchmarks (true performance floor)

func BenchmarkTick_Atomic_Direct(b *testing.B) {
	t := tick.NewAtomicTicker(benchInterval)
	b.ReportAllocs()
	b.ResetTimer()

	var result bool
	for i := 0; i < b.N; i++ {
		result = t.Tick()
	}
	sinkTick = result
}

// BenchmarkTick is the progress check the trials loop makes between runs.
func BenchmarkTick(b *testing.B) {
	for _, tc := range tickers {
		b.Run(tc.name, func(b *testing.B) {
			t := tc.new(benchInterval)
			defer t.Stop()
			b.ReportAllocs()
			b.ResetTimer()

			var result bool
			for i := 0; i < b.N; i++ {
				result = t.Tick()
			}
			sinkTick = result
		})
	}
}

func BenchmarkTick_Reset(b *testing.B) {
	for _, tc := range tickers {
		b.Run(tc.name, func(b *testing.B) {
			t := tc.new(benchInterval)
			defer t.Stop()
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				t.Reset()
			}
		})
	}
}

func BenchmarkTick_Parallel(b *testing.B) {
	for _, tc := range tickers {
		b.Run(tc.name, func(b *testing.B) {
			t := tc.new(benchInterval)
			defer t.Stop()
			b.ReportAllocs()
			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				var result bool
				for pb.Next() {
					result = t.Tick()
				}
				sinkTick = result
			})
		})
	}
}

// BenchmarkWatchdog_StartStop measures what a run with StallTimeout pays to
// arm and disarm its watchdog.
func BenchmarkWatchdog_StartStop(b *testing.B) {
	var progress atomic.Int64
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := tick.NewWatchdog(benchInterval, progress.Load, func() {})
		w.Start()
		w.Stop()
	}
}
