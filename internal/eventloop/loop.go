// Package eventloop runs tasks one at a time on a single goroutine.
//
// A task posted from inside another task runs after the current one and after
// everything already queued, which is what the UI code calls "the next tick".
package eventloop

import (
	"context"
	"errors"
	"log"
	"sync"
)

var ErrStopped = errors.New("event loop stopped")

// Loop is an unbounded FIFO of tasks drained by Run.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
	done    chan struct{}
}

// New creates a loop. Tasks may be posted before Run starts.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post enqueues fn and reports whether it was accepted. It never blocks.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Call runs fn on the loop and waits for it to finish. It must not be called
// from a task, which would deadlock.
func (l *Loop) Call(fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// Run drains tasks until ctx is cancelled. Tasks still queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.mu.Unlock()
		close(l.done)
	}()

	for {
		l.mu.Lock()
		var fn func()
		if len(l.queue) > 0 {
			fn = l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
		}
		l.mu.Unlock()

		if fn != nil {
			l.run(fn)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] event loop task panic recovered: %v", r)
		}
	}()
	fn()
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }
