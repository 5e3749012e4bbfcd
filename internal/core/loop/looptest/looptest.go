// Package looptest provides a deterministic loop.Loop for tests.
//
// Work handed to Go is queued instead of started; Flush runs it, together
// with its completion, on the caller's goroutine. Timers run against a
// virtual clock that only moves when Advance is called.
package looptest

import (
	"sort"
	"time"

	"github.com/custodia-labs/ghfinder/internal/core/loop"
)

// Ensure Loop implements loop.Loop.
var _ loop.Loop = (*Loop)(nil)

// Loop is a manual loop with a virtual clock.
type Loop struct {
	now     time.Time
	jobs    []func() func()
	timers  []*timer
	nextSeq int
}

type timer struct {
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// New creates a manual loop whose clock starts at the Unix epoch.
func New() *Loop {
	return &Loop{now: time.Unix(0, 0)}
}

// Now returns the virtual time.
func (l *Loop) Now() time.Time {
	return l.now
}

// Go queues work until the next Flush.
func (l *Loop) Go(work func() func()) {
	l.jobs = append(l.jobs, work)
}

// AfterFunc registers fn to run when the virtual clock reaches now+d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) loop.Timer {
	t := &timer{at: l.now.Add(d), seq: l.nextSeq, fn: fn}
	l.nextSeq++
	l.timers = append(l.timers, t)
	return t
}

// Pending returns the number of queued jobs not yet flushed.
func (l *Loop) Pending() int {
	return len(l.jobs)
}

// ActiveTimers returns the number of timers that have neither fired nor stopped.
func (l *Loop) ActiveTimers() int {
	n := 0
	for _, t := range l.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Flush runs queued jobs and their completions in FIFO order, including jobs
// queued by those completions, until none remain.
func (l *Loop) Flush() {
	for len(l.jobs) > 0 {
		job := l.jobs[0]
		l.jobs = l.jobs[1:]
		if done := job(); done != nil {
			done()
		}
	}
}

// FlushOne runs only the oldest queued job and its completion.
// It returns false if no job was queued.
func (l *Loop) FlushOne() bool {
	if len(l.jobs) == 0 {
		return false
	}
	job := l.jobs[0]
	l.jobs = l.jobs[1:]
	if done := job(); done != nil {
		done()
	}
	return true
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Queued jobs are not flushed.
func (l *Loop) Advance(d time.Duration) {
	target := l.now.Add(d)
	for {
		t := l.nextDue(target)
		if t == nil {
			break
		}
		l.now = t.at
		t.fired = true
		t.fn()
	}
	l.now = target
	l.compact()
}

func (l *Loop) nextDue(target time.Time) *timer {
	var due []*timer
	for _, t := range l.timers {
		if !t.stopped && !t.fired && !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (l *Loop) compact() {
	live := l.timers[:0]
	for _, t := range l.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	l.timers = live
}
