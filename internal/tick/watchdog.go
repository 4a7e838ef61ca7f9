package tick

import (
	"sync"
	"time"
)

// Watchdog samples a progress counter every interval and calls onStall once
// if two consecutive samples are equal.
type Watchdog struct {
	interval time.Duration
	progress func() int64
	onStall  func()

	done chan struct{}
	stop sync.Once
	wg   sync.WaitGroup
}

// NewWatchdog creates a stopped Watchdog. Call Start to begin sampling.
func NewWatchdog(interval time.Duration, progress func() int64, onStall func()) *Watchdog {
	return &Watchdog{
		interval: interval,
		progress: progress,
		onStall:  onStall,
		done:     make(chan struct{}),
	}
}

// Start launches the sampling goroutine.
func (w *Watchdog) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watchdog) run() {
	defer w.wg.Done()

	t := NewTicker(w.interval)
	defer t.Stop()

	last := w.progress()
	for {
		select {
		case <-w.done:
			return
		case <-t.C():
			now := w.progress()
			if now == last {
				w.onStall()
				return
			}
			last = now
		}
	}
}

// Stop ends sampling and waits for the goroutine to exit.
// Safe to call multiple times. Must not be called from onStall.
func (w *Watchdog) Stop() {
	w.stop.Do(func() { close(w.done) })
	w.wg.Wait()
}
