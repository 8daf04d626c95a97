package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestAfterFires(t *testing.T) {
	var fired atomic.Bool
	task := After(context.Background(), time.Millisecond, func() { fired.Store(true) })
	task.Wait()
	if !fired.Load() {
		t.Fatal("expected callback to fire")
	}
}

func TestCancelPreventsCallback(t *testing.T) {
	var fired atomic.Bool
	task := After(context.Background(), 50*time.Millisecond, func() { fired.Store(true) })
	task.Cancel()
	task.Wait()
	if fired.Load() {
		t.Fatal("expected cancelled callback to stay silent")
	}
}

func TestParentContextCancelPreventsCallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var fired atomic.Bool
	task := After(ctx, 50*time.Millisecond, func() { fired.Store(true) })
	cancel()
	task.Wait()
	if fired.Load() {
		t.Fatal("expected callback suppressed by parent cancellation")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	task := After(context.Background(), time.Millisecond, func() {})
	task.Cancel()
	task.Cancel()
	task.Wait()
}
