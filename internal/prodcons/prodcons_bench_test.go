package prodcons_test

import (
	"context"
	"testing"

	"github.com/randomizedcoder/prodcons-bench/internal/cancel"
	"github.com/randomizedcoder/prodcons-bench/internal/prodcons"
	"github.com/randomizedcoder/prodcons-bench/internal/queue"
)

var sinkResult prodcons.Result

// BenchmarkRun measures one complete 4x4 experiment per op.
func BenchmarkRun(b *testing.B) {
	const n = 1000

	for _, tc := range safeVariants() {
		b.Run(name(tc.v, tc.capacity), func(b *testing.B) {
			consumers := 4
			if tc.v == queue.VariantSharded {
				consumers = 1
			}
			cfg := prodcons.Config{
				Producers:        4,
				Consumers:        consumers,
				Variant:          tc.v,
				Capacity:         tc.capacity,
				ItemsPerProducer: n,
				ItemsPerConsumer: 4 * n / consumers,
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				res, err := prodcons.Run(context.Background(), cfg)
				if err != nil {
					b.Fatal(err)
				}
				sinkResult = res
			}
			b.ReportMetric(float64(b.Elapsed().Nanoseconds())/float64(int64(b.N)*cfg.ExpectedItems()), "ns/item")
		})
	}
}

// BenchmarkRun_CancelMode compares the per-iteration flag check.
func BenchmarkRun_CancelMode(b *testing.B) {
	for _, mode := range []cancel.Mode{cancel.ModeAtomic, cancel.ModeContext} {
		b.Run(mode.String(), func(b *testing.B) {
			cfg := prodcons.Config{
				Producers:        1,
				Consumers:        1,
				Variant:          queue.VariantLocked,
				ItemsPerProducer: 10000,
				ItemsPerConsumer: 10000,
				CancelMode:       mode,
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				res, err := prodcons.Run(context.Background(), cfg)
				if err != nil {
					b.Fatal(err)
				}
				sinkResult = res
			}
		})
	}
}
