// Package timer schedules the game's periodic tick and one-shot effects.
//
// Every Task can be cancelled, and a cancelled task never runs again, even
// when its timer has already fired. Loop hands callbacks to a single
// goroutine through a channel so the game state is only touched there.
package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Task is a handle on a scheduled callback
type Task interface {
	Cancel()
}

// Scheduler runs callbacks after a delay or periodically
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
	After(delay time.Duration, fn func()) Task
}

// Loop is the real-time Scheduler. Fired callbacks are queued on C and must
// be run by the owner's goroutine.
type Loop struct {
	c chan func()
}

// NewLoop creates a Loop whose queue holds up to buffer fired callbacks
func NewLoop(buffer int) *Loop {
	return &Loop{c: make(chan func(), buffer)}
}

// C delivers fired callbacks. Receive from it and call the function.
func (l *Loop) C() <-chan func() {
	return l.c
}

type loopTask struct {
	cancelled atomic.Bool
	stop      chan struct{}
	once      sync.Once
}

func (t *loopTask) Cancel() {
	t.once.Do(func() {
		t.cancelled.Store(true)
		close(t.stop)
	})
}

// guard wraps fn so a cancelled task is dropped when dequeued
func (t *loopTask) guard(fn func()) func() {
	return func() {
		if t.cancelled.Load() {
			return
		}
		fn()
	}
}

func (l *Loop) Every(interval time.Duration, fn func()) Task {
	t := &loopTask{stop: make(chan struct{})}
	run := t.guard(fn)
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				// Skip the tick rather than pile up when the owner is slow
				select {
				case l.c <- run:
				case <-t.stop:
					return
				default:
				}
			}
		}
	}()
	return t
}

func (l *Loop) After(delay time.Duration, fn func()) Task {
	t := &loopTask{stop: make(chan struct{})}
	run := t.guard(fn)
	timer := time.NewTimer(delay)
	go func() {
		defer timer.Stop()
		select {
		case <-t.stop:
		case <-timer.C:
			select {
			case l.c <- run:
			case <-t.stop:
			}
		}
	}()
	return t
}
