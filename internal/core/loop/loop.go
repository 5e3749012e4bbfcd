// Package loop provides the single-threaded event loop the core runs on.
//
// Core components never mutate their state from a network goroutine. They
// hand blocking work to [Loop.Go] and receive the completion back on the
// loop, and they schedule timers with [Loop.AfterFunc]. Whatever drains the
// loop (the bubbletea program, or [Queue.Run] for headless callers) is the
// only goroutine that touches core state, so no locks are needed.
package loop

import "time"

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the timer from firing. It returns false if the timer
	// already fired or was stopped.
	Stop() bool
}

// Loop schedules work onto a single logical goroutine.
type Loop interface {
	// Go runs work off the loop. The completion it returns, if non-nil,
	// runs on the loop.
	Go(work func() func())

	// AfterFunc runs fn on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer

	// Now returns the loop's current time.
	Now() time.Time
}
