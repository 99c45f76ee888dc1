// Package debounce coalesces bursts of calls into the last one.
package debounce

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once d has elapsed.
type AfterFunc func(d time.Duration, f func()) Timer

// Dispatcher runs f on the goroutine that owns the debounced state.
type Dispatcher func(f func())

// Option configures a Debouncer
type Option func(*Debouncer)

// WithScheduler replaces time.AfterFunc.
func WithScheduler(after AfterFunc) Option {
	return func(d *Debouncer) { d.after = after }
}

// WithDispatcher hands fired callbacks to dispatch instead of running them
// on the timer goroutine.
func WithDispatcher(dispatch Dispatcher) Option {
	return func(d *Debouncer) { d.dispatch = dispatch }
}

// Debouncer runs only the last callback of a burst, once no further call has
// arrived for the quiescence window. Superseded callbacks never run.
type Debouncer struct {
	wait     time.Duration
	after    AfterFunc
	dispatch Dispatcher

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// New creates a debouncer with the given quiescence window.
func New(wait time.Duration, opts ...Option) *Debouncer {
	d := &Debouncer{
		wait: wait,
		after: func(wait time.Duration, f func()) Timer {
			return time.AfterFunc(wait, f)
		},
		dispatch: func(f func()) { f() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait returns the quiescence window.
func (d *Debouncer) Wait() time.Duration {
	return d.wait
}

// Call cancels any pending callback and schedules fn.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = d.after(d.wait, func() {
		d.dispatch(func() {
			if d.claim(gen) {
				fn()
			}
		})
	})
}

// Cancel drops the pending callback, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Pending reports whether a callback is scheduled and not yet run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// claim reports whether gen is still current and marks it consumed.
func (d *Debouncer) claim(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen || d.timer == nil {
		return false
	}
	d.timer = nil
	return true
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
