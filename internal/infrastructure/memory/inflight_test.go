package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestInflightGuard_SecondAcquireFails(t *testing.T) {
	g := NewInflightGuard()
	ctx := context.Background()

	ok, err := g.Acquire(ctx, "inflight:s1:concierge")
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}
	ok, _ = g.Acquire(ctx, "inflight:s1:concierge")
	if ok {
		t.Fatal("expected second acquire of the same key to fail")
	}
	ok, _ = g.Acquire(ctx, "inflight:s2:concierge")
	if !ok {
		t.Fatal("expected a different key to be acquirable")
	}
}

func TestInflightGuard_ReleaseFreesKey(t *testing.T) {
	g := NewInflightGuard()
	ctx := context.Background()

	_, _ = g.Acquire(ctx, "k")
	if err := g.Release(ctx, "k"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, _ := g.Acquire(ctx, "k")
	if !ok {
		t.Fatal("expected key to be free after release")
	}
}

func TestInflightGuard_ConcurrentAcquireHasOneWinner(t *testing.T) {
	g := NewInflightGuard()
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := g.Acquire(context.Background(), "k"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if got := wins.Load(); got != 1 {
		t.Fatalf("expected exactly one winner, got %d", got)
	}
}
