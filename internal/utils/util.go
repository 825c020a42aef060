package utils

import (
	"sync"
	"time"
)

// Debouncer delays a call until no new call arrived for the given duration.
type Debouncer struct {
	mutex   sync.Mutex
	timer   *time.Timer
	pending func()
}

// Debounce calls fn after duration, canceling any previous pending call.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	var timer *time.Timer
	timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		if d.timer != timer {
			// Replaced or stopped after firing; the newer timer owns pending.
			d.mutex.Unlock()
			return
		}
		call := d.pending
		d.pending = nil
		d.timer = nil
		d.mutex.Unlock()
		if call != nil {
			call()
		}
	})
	d.timer = timer
}

// Stop cancels a pending call and returns it, or nil if nothing was pending.
func (d *Debouncer) Stop() func() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	call := d.pending
	d.pending = nil
	return call
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.pending != nil
}
