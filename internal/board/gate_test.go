package board

import (
	"context"
	"testing"
	"time"
)

func TestGateFirstPassIsFree(t *testing.T) {
	g := NewGate(time.Second)

	start := time.Now()
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("first wait blocked for %v", elapsed)
	}
}

func TestGateEnforcesInterval(t *testing.T) {
	const interval = 30 * time.Millisecond
	g := NewGate(interval)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := g.Wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	// Two gated intervals after the free first pass.
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Fatalf("three waits finished in %v, want at least %v", elapsed, 2*interval)
	}
}

func TestGateCancellation(t *testing.T) {
	g := NewGate(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	if err := g.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected cancellation error")
		}
	case <-time.After(time.Second):
		t.Fatal("wait did not return after cancellation")
	}
}

func TestGateZeroInterval(t *testing.T) {
	g := NewGate(0)
	for i := 0; i < 3; i++ {
		if err := g.Wait(context.Background()); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
}
