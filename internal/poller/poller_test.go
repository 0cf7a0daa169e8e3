package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPoller_RefreshWithoutStart(t *testing.T) {
	var calls atomic.Int32
	p := New("test", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, zap.NewNop())

	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Unexpected refresh error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected 1 fetch, got %d", calls.Load())
	}
}

func TestPoller_RefreshPropagatesError(t *testing.T) {
	wantErr := errors.New("backend down")
	p := New("test", time.Hour, func(ctx context.Context) error {
		return wantErr
	}, zap.NewNop())

	if err := p.Refresh(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Expected fetch error to propagate, got %v", err)
	}
}

func TestPoller_SkipsOverlappingFetch(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	p := New("test", time.Hour, func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return nil
	}, zap.NewNop())

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- p.Refresh(context.Background())
	}()
	<-started

	// Second refresh while the first is still in flight must be a no-op.
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Skipped refresh should not error: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("Expected overlapping refresh to be skipped, got %d fetches", calls.Load())
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("Unexpected first refresh error: %v", err)
	}

	// After the first completes, refresh works again.
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Unexpected refresh error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected 2 fetches, got %d", calls.Load())
	}
}

func TestPoller_StartTicksAndStopHalts(t *testing.T) {
	var calls atomic.Int32
	p := New("test", 10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, zap.NewNop())

	p.Start()
	if !p.Running() {
		t.Fatal("Expected poller to be running after Start")
	}

	deadline := time.After(2 * time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("Expected at least 2 ticks, got %d", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	p.Stop()
	if p.Running() {
		t.Fatal("Expected poller to be stopped after Stop")
	}

	// The timer goroutine is gone; the count must not keep growing.
	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != after {
		t.Errorf("Fetches continued after Stop: %d -> %d", after, calls.Load())
	}
}

func TestPoller_StartIdempotent(t *testing.T) {
	p := New("test", time.Hour, func(ctx context.Context) error {
		return nil
	}, zap.NewNop())

	p.Start()
	first := p.done
	p.Start()
	if p.done != first {
		t.Error("Second Start must not replace the running timer")
	}

	p.Stop()
	p.Stop() // Stopping twice must not panic or block.
	if p.Running() {
		t.Error("Expected poller stopped")
	}
}
