// Package prodcons runs producer/consumer experiments against a shared queue.
//
// One experiment builds a queue of the configured variant, starts N producer
// and M consumer goroutines bound to it, waits for all of them and
// aggregates their counts and timings into a Result:
//
//	res, err := prodcons.Run(ctx, prodcons.Config{
//	    Producers:        4,
//	    Consumers:        4,
//	    Variant:          queue.VariantLocked,
//	    ItemsPerProducer: 1000,
//	    ItemsPerConsumer: 1000,
//	})
//
// Consumers on a safe variant block in Dequeue while the queue is empty.
// Consumers on queue.VariantUnsafe busy-poll IsEmpty and then Remove, racing
// each other between the two steps. Their runs may lose or duplicate items,
// or fail with queue.ErrConcurrentAccess; set Timeout or StallTimeout so that
// a run which lost items ends as cancelled instead of spinning forever.
//
// Cancellation is cooperative: every task checks a shared flag once per loop
// iteration, and the queue is closed to release tasks suspended inside it.
package prodcons
