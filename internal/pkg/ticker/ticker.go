// Package ticker provides a cancellable periodic callback with an explicit
// start/stop handle. Sessions own their ticker and tear it down when they
// end, so no callback keeps firing after the owning session goes inactive.
package ticker

import (
	"sync"
	"time"
)

// Ticker invokes a callback at a fixed interval until stopped.
type Ticker struct {
	interval time.Duration
	fn       func()

	mu       sync.Mutex
	stopChan chan struct{}
}

// New creates a ticker that will invoke fn every interval once started.
func New(interval time.Duration, fn func()) *Ticker {
	return &Ticker{
		interval: interval,
		fn:       fn,
	}
}

// Start begins ticking in a background goroutine. Starting an already
// running ticker is a no-op.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopChan != nil {
		return
	}

	stop := make(chan struct{})
	t.stopChan = stop

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.fn()
			}
		}
	}()
}

// Stop cancels the ticker. Safe to call multiple times and on a ticker that
// was never started.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopChan == nil {
		return
	}
	close(t.stopChan)
	t.stopChan = nil
}

// Running reports whether the ticker is currently active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopChan != nil
}
