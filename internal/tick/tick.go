// Package tick provides interval triggers for the benchmark harness.
//
// This package offers two implementations of the Ticker interface:
//   - StdTicker: Standard library time.Ticker wrapper, also usable in select
//   - AtomicTicker: Atomic timestamp comparison using runtime.nanotime
//
// Watchdog builds on StdTicker to detect runs whose progress counter stops
// advancing.
package tick

import "time"

// Ticker signals when a time interval has elapsed.
//
// All implementations are safe for concurrent use from multiple goroutines,
// though typically only one goroutine polls Tick() in a loop.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset resets the ticker to start a new interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	// After Stop, the ticker should not be used.
	Stop()
}

// DefaultInterval is the default progress report interval.
const DefaultInterval = time.Second
