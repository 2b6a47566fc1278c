package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_EveryRunsOnInterval(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	if err := s.Every("prices", time.Second, func(context.Context) { runs.Add(1) }); err != nil {
		t.Fatalf("register: %v", err)
	}
	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for runs.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("task never ran")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestScheduler_RegisterErrors(t *testing.T) {
	s := NewScheduler(context.Background())
	noop := func(context.Context) {}
	if err := s.Every("history", 0, noop); err == nil {
		t.Error("expected error for a zero interval")
	}
	if err := s.Every("history", time.Minute, noop); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.Every("history", time.Minute, noop); err == nil {
		t.Error("expected error for a duplicate name")
	}
	if err := s.RunNow("missing"); err == nil {
		t.Error("expected error for an unknown task")
	}
}

func TestScheduler_RunNowAndRunAfter(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	s.Every("refresh", time.Hour, func(context.Context) { runs.Add(1) })

	if err := s.RunNow("refresh"); err != nil {
		t.Fatalf("run now: %v", err)
	}
	if runs.Load() != 1 {
		t.Fatalf("expected 1 run, got %d", runs.Load())
	}

	if err := s.RunAfter("refresh", 10*time.Millisecond); err != nil {
		t.Fatalf("run after: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("delayed run never happened")
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()
}

func TestScheduler_StopCancelsDelayedRun(t *testing.T) {
	s := NewScheduler(context.Background())
	var runs atomic.Int32
	s.Every("refresh", time.Hour, func(context.Context) { runs.Add(1) })
	s.RunAfter("refresh", time.Hour)
	s.Start()
	s.Stop()
	if runs.Load() != 0 {
		t.Errorf("expected no runs, got %d", runs.Load())
	}
}

func TestScheduler_CancelledContextSkipsRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(ctx)
	var runs atomic.Int32
	s.Every("history", time.Hour, func(context.Context) { runs.Add(1) })
	cancel()
	s.RunNow("history")
	if runs.Load() != 0 {
		t.Error("a task must not run after the context is cancelled")
	}
}
