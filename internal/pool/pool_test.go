package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAcquireCreatesUpToMax(t *testing.T) {
	var created int32
	p := New(2, func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&created, 1)), nil
	}, nil)

	ctx := context.Background()
	a, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire 1: %v", err)
	}
	b, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire 2: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct items, got %d twice", a)
	}

	ctx3, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := p.Acquire(ctx3); err == nil {
		t.Fatalf("expected third acquire to block past capacity and time out")
	}
}

func TestReleaseAllowsReuse(t *testing.T) {
	var created int32
	p := New(1, func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&created, 1)), nil
	}, nil)

	ctx := context.Background()
	item, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	p.Put(item, true)

	again, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	if again != item {
		t.Fatalf("expected idle item to be reused, got new item %d want %d", again, item)
	}
	if atomic.LoadInt32(&created) != 1 {
		t.Fatalf("expected exactly one item created, factory ran %d times", created)
	}
}

func TestPutFalseDiscardsAndFreesCapacity(t *testing.T) {
	var created, discarded int32
	p := New(1, func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&created, 1)), nil
	}, func(int) {
		atomic.AddInt32(&discarded, 1)
	})

	ctx := context.Background()
	item, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	p.Put(item, false)

	if _, err := p.Acquire(ctx); err != nil {
		t.Fatalf("acquire after discard: %v", err)
	}
	if atomic.LoadInt32(&created) != 2 {
		t.Fatalf("expected a fresh item after discard, created=%d", created)
	}
	if atomic.LoadInt32(&discarded) != 1 {
		t.Fatalf("expected discard callback once, got %d", discarded)
	}
}

func TestShutdownRejectsFurtherAcquire(t *testing.T) {
	p := New(1, func(ctx context.Context) (int, error) { return 1, nil }, nil)
	p.Shutdown()

	if _, err := p.Acquire(context.Background()); err != ErrShutdown {
		t.Fatalf("expected ErrShutdown, got %v", err)
	}
}

func TestConcurrentAcquireRelease(t *testing.T) {
	var created int32
	p := New(4, func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&created, 1)), nil
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item, err := p.Acquire(context.Background())
			if err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			p.Put(item, true)
		}()
	}
	wg.Wait()

	if atomic.LoadInt32(&created) > 4 {
		t.Fatalf("expected at most 4 items ever created, got %d", created)
	}
}
