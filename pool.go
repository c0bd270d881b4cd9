package redis

import (
	"context"
	"errors"

	"github.com/xenking/respdrive/internal/pool"
)

// Pool is a bounded set of Conns to one address, dialed lazily up to
// Options.MaxConnections and reused across calls, generalizing the
// teacher's own single-slot connSem into an arbitrary capacity.
type Pool struct {
	opts Options
	p    *pool.Pool[*Conn]
}

// NewPool creates a Pool that dials opts.Addr on demand, up to
// opts.MaxConnections connections outstanding at once.
func NewPool(opts Options) *Pool {
	opts = opts.normalized()
	pl := &Pool{opts: opts}
	pl.p = pool.New(opts.MaxConnections,
		func(ctx context.Context) (*Conn, error) {
			return Dial(ctx, opts)
		},
		func(c *Conn) {
			opts.Logger.Printf("redis: evicting connection to %s", opts.Addr)
			c.Close(nil)
		},
	)
	return pl
}

// Acquire returns an idle, healthy connection or dials a fresh one, up to
// MaxConnections outstanding, blocking until one is available or ctx is
// done.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	c, err := p.p.Acquire(ctx)
	if err != nil {
		if errors.Is(err, pool.ErrShutdown) {
			return nil, ErrPoolShutdown
		}
		return nil, err
	}
	c.setInPool(false)
	return c, nil
}

// Release returns c to the idle set if it is healthy (open, idle, no open
// transaction), or discards it otherwise. A caller must not use c again
// after calling Release, whichever path is taken.
func (p *Pool) Release(c *Conn) {
	if !c.Healthy() {
		p.p.Put(c, false)
		return
	}
	c.setInPool(true)
	p.p.Put(c, true)
}

// Shutdown closes every idle connection and rejects further Acquire calls.
// Connections currently checked out are unaffected until their holder
// calls Release.
func (p *Pool) Shutdown() {
	p.p.Shutdown()
}
