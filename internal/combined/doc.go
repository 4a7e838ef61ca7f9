// Package combined benchmarks the pieces of a producer/consumer loop
// together: one cancellation check plus one queue operation per iteration,
// and whole pipelines of concurrent producers draining into consumers.
//
// These numbers are closer to what prodcons.Run pays per item than the
// isolated queue or cancel micro-benchmarks, since they capture the
// interaction between the flag check and the queue's synchronization.
package combined
