package listview

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of values into the last one, delivered after
// the quiet period. It is decoupled from any view so the timing behavior can
// be tested on its own.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	out     chan T
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// Emit feeds a value in. Each call restarts the quiet period; only the value
// from the final call of a burst is delivered.
func (d *Debouncer[T]) Emit(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		// Replace an unconsumed value rather than queueing behind it.
		select {
		case <-d.out:
		default:
		}
		d.out <- v
		d.mu.Unlock()
	})
}

// C delivers the coalesced values.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Stop discards any pending value and silences the debouncer.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
