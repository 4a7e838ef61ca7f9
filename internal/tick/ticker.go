package tick

import "time"

// StdTicker is the channel-backed Ticker. The stall watchdog selects on C
// alongside its stop channel, and the benchmarks poll it with Tick to weigh
// a channel receive against AtomicTicker's clock read.
type StdTicker struct {
	ticker   *time.Ticker
	interval time.Duration
}

func NewTicker(interval time.Duration) *StdTicker {
	return &StdTicker{
		ticker:   time.NewTicker(interval),
		interval: interval,
	}
}

// Tick drains at most one pending tick without waiting. Ticks missed while
// nobody polled collapse into one, as time.Ticker drops them.
func (t *StdTicker) Tick() bool {
	select {
	case <-t.ticker.C:
		return true
	default:
		return false
	}
}

// C is for callers that sleep until the next interval.
func (t *StdTicker) C() <-chan time.Time {
	return t.ticker.C
}

// Reset starts a fresh interval from now; a pending tick is kept.
func (t *StdTicker) Reset() {
	t.ticker.Reset(t.interval)
}

func (t *StdTicker) Stop() {
	t.ticker.Stop()
}

func (t *StdTicker) Interval() time.Duration {
	return t.interval
}
