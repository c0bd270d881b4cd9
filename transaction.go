package redis

import (
	"fmt"

	"github.com/xenking/respdrive/internal/resp"
)

// Tx is a handle to one open MULTI...EXEC bracket on a Conn. It is not
// itself safe for concurrent use — only one goroutine drives a given
// transaction. The Conn does not hold back Do calls from other goroutines
// while a transaction is open; such a command reaches the server between
// MULTI and EXEC and is queued there as part of the transaction, so EXEC
// returns more results than Queue registered and the Conn is closed with
// ErrFramingMismatch.
type Tx struct {
	conn       *Conn
	generation uint64
	done       bool
}

// Multi opens a transaction: it sends MULTI, allocates a fresh generation,
// and returns a Tx for queuing commands into it. The returned Future
// resolves with MULTI's own +OK (or the error that rejected it).
func (c *Conn) Multi() (*Tx, Future, error) {
	c.mu.Lock()
	if c.closed {
		err := c.closeErr
		c.mu.Unlock()
		if err == nil {
			err = ErrConnClosed
		}
		return nil, Future{}, err
	}
	if c.inPool {
		c.mu.Unlock()
		return nil, Future{}, ErrConnInPool
	}
	if c.openGeneration != 0 {
		c.mu.Unlock()
		return nil, Future{}, fmt.Errorf("redis: transaction already open on this connection")
	}
	c.transactionGeneration++
	gen := c.transactionGeneration
	c.openGeneration = gen
	c.transactions[gen] = &transaction{}
	c.mu.Unlock()

	f, err := c.submit(resp.NewCommand("MULTI"), waiterMultiBegin, gen)
	if err != nil {
		return nil, Future{}, err
	}
	return &Tx{conn: c, generation: gen}, f, nil
}

// Queue submits cmd inside the transaction. The returned Future resolves
// with the command's own result once EXEC delivers it, or with a
// *TransactionError if the transaction is aborted or discarded first —
// never with the literal "+QUEUED" acknowledgement, which Queue consumes
// internally.
func (t *Tx) Queue(cmd resp.Command) (Future, error) {
	if t.done {
		return Future{}, fmt.Errorf("redis: transaction already closed")
	}

	t.conn.mu.Lock()
	tx := t.conn.transactions[t.generation]
	if tx == nil {
		t.conn.mu.Unlock()
		return Future{}, fmt.Errorf("redis: transaction generation no longer open")
	}
	resultFuture := newFuture()
	tx.waiters = append(tx.waiters, &txWaiter{future: resultFuture})
	t.conn.mu.Unlock()

	// The queuing ack (+QUEUED or an error) is consumed by a waiterQueued
	// entry that carries no future of its own; on abort dispatchQueued
	// resolves the generation's first still-open txWaiter, and otherwise
	// leaves resultFuture for EXEC.
	_, err := t.conn.submit(cmd, waiterQueued, t.generation)
	if err != nil {
		return Future{}, err
	}
	return resultFuture, nil
}

// Exec closes the transaction by sending EXEC. The returned Future resolves
// with the raw Array reply (or NilArray if a watched key aborted it); every
// Future returned by Queue resolves at the same time.
func (t *Tx) Exec() (Future, error) {
	if t.done {
		return Future{}, fmt.Errorf("redis: transaction already closed")
	}
	t.done = true
	return t.conn.submit(resp.NewCommand("EXEC"), waiterExec, t.generation)
}

// Discard closes the transaction by sending DISCARD. Every Future returned
// by Queue resolves with a *TransactionError{Kind: TransactionDiscarded}.
func (t *Tx) Discard() (Future, error) {
	if t.done {
		return Future{}, fmt.Errorf("redis: transaction already closed")
	}
	t.done = true
	return t.conn.submit(resp.NewCommand("DISCARD"), waiterDiscard, t.generation)
}

// Watch sends WATCH for the given keys. It is valid only outside an open
// transaction, matching the server's own restriction.
func (c *Conn) Watch(keys ...string) (Future, error) {
	args := make([][]byte, len(keys))
	for i, k := range keys {
		args[i] = []byte(k)
	}
	return c.Do(resp.NewCommand("WATCH", args...))
}

// Unwatch sends UNWATCH, clearing every key registered by a prior Watch.
func (c *Conn) Unwatch() (Future, error) {
	return c.Do(resp.NewCommand("UNWATCH"))
}
