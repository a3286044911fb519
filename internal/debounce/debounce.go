// Package debounce coalesces rapid event bursts into a single delivery.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is the debounce window used when none is configured.
const DefaultWindow = 100 * time.Millisecond

// Debouncer holds the last value scheduled within the window and delivers it
// once the window elapses with no further schedules. Each Schedule cancels
// and replaces any pending delivery, so only the final value of a burst is
// ever seen by the callback.
type Debouncer[T any] struct {
	window   time.Duration
	deliver  func(T)
	mu       sync.Mutex
	timer    *time.Timer
	seq      uint64
	lastSeen T
}

// New creates a Debouncer delivering values to fn. A zero window falls back
// to DefaultWindow.
func New[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer[T]{window: window, deliver: fn}
}

// Schedule records v as the pending value and (re)starts the window.
func (d *Debouncer[T]) Schedule(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	d.lastSeen = v

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// A later Schedule or Cancel supersedes this firing. Checking the
		// sequence number covers the race where Stop returns false because
		// the timer already fired.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		value := d.lastSeen
		d.mu.Unlock()

		d.deliver(value)
	})
}

// Cancel drops any pending delivery.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Window returns the configured debounce window.
func (d *Debouncer[T]) Window() time.Duration { return d.window }
