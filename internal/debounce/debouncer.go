// Package debounce coalesces bursts of input into a single delayed value.
package debounce

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultWindow is the quiet period applied to search input.
const DefaultWindow = 300 * time.Millisecond

// Debouncer delivers the most recent value once no new value has arrived for
// the configured window. Each Trigger cancels the pending delivery and starts
// the window again, so at most one delivery is ever scheduled.
type Debouncer[T any] struct {
	window  time.Duration
	mu      sync.Mutex
	latest  T
	pending bool
	gen     uint64
	timer   *time.Timer
	output  chan T
	stopped bool
}

// New creates a debouncer with the given quiet period.
// A non-positive window selects DefaultWindow.
func New[T any](window time.Duration) *Debouncer[T] {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer[T]{
		window: window,
		output: make(chan T, 1),
	}
}

// Window returns the quiet period.
func (d *Debouncer[T]) Window() time.Duration {
	return d.window
}

// Trigger records v as the latest value and restarts the quiet period.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.latest = v
	d.pending = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.flush(gen) })
}

// Cancel drops the pending value, and any delivered value the consumer has
// not received yet.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.stopped {
		return
	}
	select {
	case <-d.output:
	default:
	}
}

// flush delivers the latest value. A timer that fired while a newer Trigger
// held the lock carries a stale generation and does nothing.
func (d *Debouncer[T]) flush(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || !d.pending || gen != d.gen {
		return
	}
	d.pending = false
	v := d.latest

	// A newer value replaces one the consumer has not picked up yet.
	select {
	case <-d.output:
		slog.Debug("debouncer replaced undelivered value")
	default:
	}
	d.output <- v
}

// Output returns the channel of debounced values.
// The channel is closed by Stop.
func (d *Debouncer[T]) Output() <-chan T {
	return d.output
}

// Stop cancels any pending delivery and closes the output channel.
// Safe to call multiple times.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.output)
}
