package client

import (
	"sync"
	"time"
)

// MinDebounce is the shortest quiet period before a search fetch runs.
const MinDebounce = 500 * time.Millisecond

// Debouncer runs the last triggered function once its delay passes with no
// further trigger.
type Debouncer struct {
	delay time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a debouncer; delays below MinDebounce are raised to it.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: max(delay, MinDebounce)}
}

// Delay returns the effective quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn, replacing any pending function.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop drops the pending function, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
