package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	pool := NewPool(8, zap.NewNop())
	pool.Start(context.Background(), 2)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		if !pool.Submit("count", func(context.Context) error {
			ran.Add(1)
			return nil
		}) {
			t.Fatal("submit should succeed with room in the queue")
		}
	}

	pool.Stop()
	if got := ran.Load(); got != 5 {
		t.Fatalf("expected 5 tasks to run, got %d", got)
	}
}

func TestPoolSurvivesPanicsAndErrors(t *testing.T) {
	pool := NewPool(8, zap.NewNop())
	pool.Start(context.Background(), 1)

	var ran atomic.Int32
	pool.Submit("panics", func(context.Context) error {
		panic("boom")
	})
	pool.Submit("fails", func(context.Context) error {
		return errors.New("task error")
	})
	pool.Submit("succeeds", func(context.Context) error {
		ran.Add(1)
		return nil
	})

	pool.Stop()
	if got := ran.Load(); got != 1 {
		t.Fatalf("pool should keep working after a panic, got %d", got)
	}
}

func TestPoolDropsWhenQueueFull(t *testing.T) {
	pool := NewPool(1, zap.NewNop())
	// Not started: nothing drains the queue.

	if !pool.Submit("first", func(context.Context) error { return nil }) {
		t.Fatal("first submit should fit")
	}
	if pool.Submit("second", func(context.Context) error { return nil }) {
		t.Fatal("full queue should drop the task")
	}
}
