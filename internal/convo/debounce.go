package convo

import (
	"sync"
	"time"
)

// Debounce is a cancellable scheduled task. Re-triggering before the delay
// elapses replaces the pending task; Stop cancels whatever is pending. Used
// to coalesce bursty member-added events.
type Debounce struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebounce creates a debouncer with the given delay.
func NewDebounce(delay time.Duration) *Debounce {
	return &Debounce{delay: delay}
}

// Trigger schedules fn to run after the delay, cancelling any pending task.
func (d *Debounce) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending task, if any.
func (d *Debounce) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
