package counter

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newTestCounter(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := Dial(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNextSeedsFromFloor(t *testing.T) {
	c, mr := newTestCounter(t)
	ctx := context.Background()

	n, err := c.Next(ctx, "FACT-2024-", 2)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if n != 3 {
		t.Fatalf("first value = %d, want 3", n)
	}
	// floor only matters the first time
	n, err = c.Next(ctx, "FACT-2024-", 0)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if n != 4 {
		t.Fatalf("second value = %d, want 4", n)
	}
	if got, _ := mr.Get(keyPrefix + "FACT-2024-"); got != "4" {
		t.Fatalf("stored value = %q", got)
	}

	n, err = c.Next(ctx, "FACT-2025-", 0)
	if err != nil || n != 1 {
		t.Fatalf("new year = %d, %v", n, err)
	}
}

func TestNextIsUniqueUnderConcurrency(t *testing.T) {
	c, _ := newTestCounter(t)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := c.Next(ctx, "FACT-2024-", 0)
			if err != nil {
				t.Errorf("Next: %v", err)
				return
			}
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := map[int64]bool{}
	for n := range results {
		if seen[n] {
			t.Fatalf("duplicate sequence %d", n)
		}
		seen[n] = true
	}
	if len(seen) != workers {
		t.Fatalf("got %d values, want %d", len(seen), workers)
	}
}

func TestDialBadURL(t *testing.T) {
	if _, err := Dial(context.Background(), "not a url"); err == nil {
		t.Fatal("expected error")
	}
}
