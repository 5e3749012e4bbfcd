// Package debounce coalesces rapid input changes into one delayed value.
package debounce

import (
	"time"

	"github.com/custodia-labs/ghfinder/internal/core/loop"
)

// DefaultDelay replaces a non-positive configured delay.
const DefaultDelay = 500 * time.Millisecond

// Debouncer exposes the latest input only after it has been stable for the
// configured delay. Every new input restarts the wait from zero.
//
// A Debouncer is not safe for concurrent use; it must be driven from the
// goroutine that drains its loop.
type Debouncer[T comparable] struct {
	loop     loop.Loop
	delay    time.Duration
	onSettle func(T)

	input   T
	value   T
	timer   loop.Timer
	gen     uint64
	pending bool
	closed  bool
}

// New creates a Debouncer. onSettle, if non-nil, is called on the loop each
// time the debounced value is updated.
func New[T comparable](l loop.Loop, delay time.Duration, onSettle func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		loop:     l,
		delay:    delay,
		onSettle: onSettle,
	}
}

// Delay returns the effective settle delay.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Set records a new input value and restarts the wait.
// Setting the same value as the latest input does not restart the timer.
func (d *Debouncer[T]) Set(v T) {
	if d.closed {
		return
	}
	if v == d.input {
		return
	}
	d.input = v
	d.stop()
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = d.loop.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
}

func (d *Debouncer[T]) fire(gen uint64) {
	// A fire that raced Stop or a newer Set is stale.
	if d.closed || gen != d.gen {
		return
	}
	d.pending = false
	d.timer = nil
	d.value = d.input
	if d.onSettle != nil {
		d.onSettle(d.value)
	}
}

// Value returns the debounced value.
func (d *Debouncer[T]) Value() T {
	return d.value
}

// Input returns the latest input value.
func (d *Debouncer[T]) Input() T {
	return d.input
}

// Pending reports whether a settle is scheduled.
func (d *Debouncer[T]) Pending() bool {
	return d.pending
}

// Reset sets both input and debounced value to v without waiting and
// without calling onSettle.
func (d *Debouncer[T]) Reset(v T) {
	d.stop()
	d.gen++
	d.pending = false
	d.input = v
	d.value = v
}

// Close cancels any pending timer. Later calls to Set are ignored.
func (d *Debouncer[T]) Close() {
	d.stop()
	d.gen++
	d.pending = false
	d.closed = true
}

func (d *Debouncer[T]) stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
