package loop

import (
	"context"
	"sync"
	"time"
)

// DefaultQueueSize is the channel buffer used by NewQueue when size <= 0.
const DefaultQueueSize = 64

// Ensure Queue implements Loop.
var _ Loop = (*Queue)(nil)

// Queue is a channel-backed Loop. Posted closures are delivered on C and must
// be executed by exactly one consumer.
type Queue struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		ch:   make(chan func(), size),
		done: make(chan struct{}),
	}
}

// C returns the channel of closures to run on the loop.
func (q *Queue) C() <-chan func() {
	return q.ch
}

// Done is closed once the queue is closed.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Go runs work on a new goroutine and posts its completion.
func (q *Queue) Go(work func() func()) {
	go func() {
		if fn := work(); fn != nil {
			q.post(fn)
		}
	}()
}

// AfterFunc posts fn once d has elapsed.
func (q *Queue) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		q.post(fn)
	})
}

// Now returns the wall-clock time.
func (q *Queue) Now() time.Time {
	return time.Now()
}

// post blocks until the closure is accepted or the queue is closed.
// Callers are always background goroutines, never the loop itself.
func (q *Queue) post(fn func()) {
	select {
	case <-q.done:
	case q.ch <- fn:
	}
}

// Run executes posted closures until ctx is cancelled or the queue closes.
func (q *Queue) Run(ctx context.Context) error {
	return q.RunUntil(ctx, nil)
}

// RunUntil executes posted closures until cond reports true after a closure
// ran, ctx is cancelled or the queue closes. cond is checked once before
// waiting, so an already satisfied condition returns immediately.
func (q *Queue) RunUntil(ctx context.Context, cond func() bool) error {
	if cond != nil && cond() {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.done:
			return nil
		case fn := <-q.ch:
			fn()
			if cond != nil && cond() {
				return nil
			}
		}
	}
}

// Close stops delivery. Later posts are dropped. Close is idempotent.
func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.done)
	})
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}
