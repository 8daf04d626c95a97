// Package schedule provides the cancellable post-success delay used to
// keep a confirmation visible before a redirect takes effect.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Task is a scheduled callback tied to a lifetime. Cancel stops the
// callback from firing after its owner is gone.
type Task struct {
	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// After runs fn once d elapses, unless the parent context ends or the
// task is cancelled first. The callback never fires after Cancel
// returns control to a caller holding the task.
func After(parent context.Context, d time.Duration, fn func()) *Task {
	ctx, cancel := context.WithCancel(parent)
	task := &Task{cancel: cancel, done: make(chan struct{})}

	timer := time.NewTimer(d)
	go func() {
		defer close(task.done)
		defer timer.Stop()
		select {
		case <-timer.C:
			fn()
		case <-ctx.Done():
		}
	}()
	return task
}

// Cancel stops the pending callback. Safe to call more than once.
func (t *Task) Cancel() {
	t.once.Do(t.cancel)
}

// Wait blocks until the task either fired or was cancelled. Used by
// tests; production callers fire and forget.
func (t *Task) Wait() {
	<-t.done
}
