package redis

import (
	"context"
	"time"

	"github.com/xenking/respdrive/internal/resp"
)

// Client is the top-level handle most callers use: an Options-configured
// Pool plus convenience methods that acquire a connection, run one command,
// and release it — the common case the teacher's own Client/submit pair
// covered for a single connection, generalized here to a pool of them.
type Client struct {
	opts Options
	pool *Pool
}

// NewClient creates a Client. Dialing is lazy: the first call that needs a
// connection is the first one that actually dials.
func NewClient(opts Options) *Client {
	opts = opts.normalized()
	return &Client{opts: opts, pool: NewPool(opts)}
}

// Close shuts down the underlying pool, closing every idle connection.
func (c *Client) Close() {
	c.pool.Shutdown()
}

// Do acquires a connection, submits cmd, waits for the result, and releases
// the connection back to the pool — the one-shot convenience path for
// callers that do not need explicit pipelining or transactions.
func (c *Client) Do(ctx context.Context, cmd resp.Command) (resp.Value, error) {
	conn, err := c.dialWithRetry(ctx)
	if err != nil {
		return resp.Value{}, err
	}
	defer c.pool.Release(conn)

	f, err := conn.Do(cmd)
	if err != nil {
		return resp.Value{}, err
	}
	return f.Wait(ctx)
}

// Acquire hands the caller a connection to drive directly — for
// pipelining many commands, or for opening a transaction via Conn.Multi.
// The caller must call Client.Release exactly once when done.
func (c *Client) Acquire(ctx context.Context) (*Conn, error) {
	return c.dialWithRetry(ctx)
}

// Release returns a connection obtained from Acquire to the pool.
func (c *Client) Release(conn *Conn) {
	c.pool.Release(conn)
}

// dialWithRetry wraps Pool.Acquire with the teacher's own reconnect
// cadence: a dial failure is retried after reconnectDelay rather than
// surfaced immediately, until ctx gives up.
func (c *Client) dialWithRetry(ctx context.Context) (*Conn, error) {
	for {
		conn, err := c.pool.Acquire(ctx)
		if err == nil {
			return conn, nil
		}
		if ctx.Err() != nil || err == ErrPoolShutdown {
			return nil, err
		}

		c.opts.Logger.Printf("redis: connect to %s failed: %v", c.opts.Addr, err)

		t := time.NewTimer(reconnectDelay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		}
	}
}
