// Package pool implements a small bounded pool of reusable items, generalized
// from the single-slot connSem channel the teacher's own client used to hold
// its one connection: a buffered channel is the capacity limit, taking one
// slot for every item created, while idle items wait in a mutex-guarded
// slice. Acquire reuses an idle item or takes a slot and creates one; Put
// either keeps the item idle or frees its slot.
package pool

import (
	"context"
	"errors"
	"sync"
)

// ErrShutdown is returned by Acquire once Shutdown has been called.
var ErrShutdown = errors.New("pool: shut down")

// Factory creates a new item for the pool, e.g. dialing a fresh connection.
type Factory[T any] func(ctx context.Context) (T, error)

// Discard is called when an item is evicted instead of returned to the idle
// set (it failed a health check, or the pool is shutting down).
type Discard[T any] func(item T)

// Pool is a bounded set of interchangeable items, created lazily up to Max
// and reused via Acquire/Release. It does not itself know what a "healthy"
// item looks like — callers check that and pass the answer to Put as ok;
// Put with ok=false calls Discard.
type Pool[T any] struct {
	factory Factory[T]
	discard Discard[T]

	mu       sync.Mutex
	sem      chan struct{} // bounds total outstanding items at Max
	idle     []T
	shutdown bool
}

// New creates a pool that lazily creates up to max items via factory.
// discard, if non-nil, is called for every item that is evicted rather
// than reused.
func New[T any](max int, factory Factory[T], discard Discard[T]) *Pool[T] {
	if max <= 0 {
		max = 1
	}
	return &Pool[T]{
		factory: factory,
		discard: discard,
		sem:     make(chan struct{}, max),
	}
}

// Acquire returns an idle item if one is available, or creates a new one if
// the pool has not yet reached its capacity, blocking until either happens
// or ctx is done.
func (p *Pool[T]) Acquire(ctx context.Context) (T, error) {
	var zero T

	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return zero, ErrShutdown
	}
	if n := len(p.idle); n > 0 {
		item := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return item, nil
	}
	p.mu.Unlock()

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	item, err := p.factory(ctx)
	if err != nil {
		<-p.sem
		return zero, err
	}
	return item, nil
}

// Put returns item to the idle set if ok, or discards it and frees its
// capacity slot otherwise. A caller that already holds an item obtained
// from Acquire must call Put exactly once.
func (p *Pool[T]) Put(item T, ok bool) {
	p.mu.Lock()
	if ok && !p.shutdown {
		p.idle = append(p.idle, item)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	<-p.sem
	if p.discard != nil {
		p.discard(item)
	}
}

// Shutdown discards every idle item and prevents further Acquire calls.
// Items currently checked out are unaffected until their holder calls Put;
// Put will discard them immediately once shutdown is set.
func (p *Pool[T]) Shutdown() {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return
	}
	p.shutdown = true
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	for _, item := range idle {
		<-p.sem
		if p.discard != nil {
			p.discard(item)
		}
	}
}
