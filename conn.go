package redis

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/xenking/respdrive/internal/resp"
)

// waiter is a pending response slot held in Conn's receiveQueue: a
// one-shot completion target plus the transaction generation it was
// created under (0 outside any transaction), exactly per §3's Waiter.
type waiter struct {
	kind       waiterKind
	future     Future
	generation uint64
}

type waiterKind int

const (
	// waiterPlain resolves its own future directly with whatever value
	// (or connection-close cause) arrives.
	waiterPlain waiterKind = iota
	// waiterMultiBegin is MULTI's own waiter: on an error reply it also
	// rolls back the transaction state Do opened optimistically.
	waiterMultiBegin
	// waiterQueued expects the literal "+QUEUED" reply; it owns no
	// future of its own; its job is to detect a doomed transaction and
	// propagate that to the matching txWaiter in transactionQueue.
	waiterQueued
	// waiterExec is EXEC's own waiter: on dispatch it also distributes
	// results to every open txWaiter of its generation.
	waiterExec
	// waiterDiscard is DISCARD's own waiter: on dispatch it resolves
	// every still-open txWaiter of its generation with TransactionDiscarded.
	waiterDiscard
)

// txWaiter is a transaction-scoped result waiter (§3's "per-command
// transaction waiter"): it resolves when EXEC delivers the matching
// element of its result array, or earlier if the transaction is aborted
// or discarded first.
type txWaiter struct {
	future   Future
	resolved bool
}

// transaction tracks one open MULTI...EXEC bracket.
type transaction struct {
	waiters []*txWaiter
	aborted bool
	cause   error
}

// Conn is the Connection State Machine of §4.3 — the component that
// multiplexes an arbitrary number of concurrently submitted commands onto
// one duplex stream while preserving FIFO response ordering and framing
// MULTI/EXEC/DISCARD transactions correctly under concurrent submission
// and arbitrary I/O failure.
//
// A Conn is safe for concurrent use: many goroutines may call Do (and the
// transaction helpers) on the same Conn at once, exactly like §5's "command
// invocation applies pipelining on concurrency". Internally, writes are
// serialized through mu so the wire only ever sees one affine writer, and
// exactly one background goroutine ever calls pipe.receive — the single
// reader/single writer property §5 actually cares about.
type Conn struct {
	opts Options
	pipe *pipe

	mu           sync.Mutex
	receiveQueue []*waiter
	readLoopLive bool

	transactionGeneration uint64 // bumped on every MULTI
	completedGeneration   uint64 // advances on every EXEC/DISCARD outcome
	openGeneration        uint64 // 0 when not inside a transaction
	transactions          map[uint64]*transaction

	closed  bool
	closeErr error
	inPool  bool

	writeBuf []byte
}

// Dial opens a new Conn to the address in opts and performs the optional
// AUTH/SELECT handshake. The returned Conn is not yet pooled (InPool is
// false) and belongs to the caller until Close or a Pool takes ownership.
func Dial(ctx context.Context, opts Options) (*Conn, error) {
	opts = opts.normalized()

	dialer := net.Dialer{Timeout: opts.ConnectTimeout}
	netConn, err := dialer.DialContext(ctx, opts.network(), opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("redis: dial %s: %w", opts.Addr, err)
	}
	if tcp, ok := netConn.(*net.TCPConn); ok {
		tcp.SetNoDelay(true)
	}

	c := newConn(netConn, opts)
	if err := c.handshake(ctx); err != nil {
		c.Close(err)
		return nil, err
	}
	return c, nil
}

func newConn(netConn net.Conn, opts Options) *Conn {
	return &Conn{
		opts:         opts,
		pipe:         newPipe(netConn),
		transactions: make(map[uint64]*transaction),
	}
}

func (c *Conn) handshake(ctx context.Context) error {
	if c.opts.Password != "" {
		args := [][]byte{[]byte(c.opts.Password)}
		if c.opts.Username != "" {
			args = [][]byte{[]byte(c.opts.Username), []byte(c.opts.Password)}
		}
		f, err := c.Do(resp.NewCommand("AUTH", args...))
		if err != nil {
			return err
		}
		if _, err := ExpectOK(mustWait(ctx, f)); err != nil {
			return fmt.Errorf("redis: AUTH failed: %w", err)
		}
	}
	if c.opts.DB != 0 {
		f, err := c.Do(resp.NewCommand("SELECT", []byte(fmt.Sprint(c.opts.DB))))
		if err != nil {
			return err
		}
		if _, err := ExpectOK(mustWait(ctx, f)); err != nil {
			return fmt.Errorf("redis: SELECT %d failed: %w", c.opts.DB, err)
		}
	}
	return nil
}

func mustWait(ctx context.Context, f Future) (resp.Value, error) {
	return f.Wait(ctx)
}

// InPool reports whether a Pool currently owns this Conn as idle; while it
// does, the submission gate rejects Do with ErrConnInPool.
func (c *Conn) InPool() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inPool
}

func (c *Conn) setInPool(v bool) {
	c.mu.Lock()
	c.inPool = v
	c.mu.Unlock()
}

// Healthy reports whether the connection is open, idle (no outstanding
// commands), and not inside a transaction — the condition Pool.Release
// checks before returning a connection to the idle set (§4.5).
func (c *Conn) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && len(c.receiveQueue) == 0 && c.openGeneration == 0
}

// Do submits cmd and returns a Future for its response. It enqueues a
// waiter and writes the encoded command before returning, satisfying the
// pipelining requirement: a caller may call Do any number of times without
// waiting on the returned Futures, and every command reaches the wire in
// submission order.
func (c *Conn) Do(cmd resp.Command) (Future, error) {
	return c.submit(cmd, waiterPlain, 0)
}

func (c *Conn) submit(cmd resp.Command, kind waiterKind, generation uint64) (Future, error) {
	f := newFuture()

	c.mu.Lock()
	if c.closed {
		err := c.closeErr
		c.mu.Unlock()
		if err == nil {
			err = ErrConnClosed
		}
		return Future{}, err
	}
	if c.inPool {
		c.mu.Unlock()
		return Future{}, ErrConnInPool
	}

	c.writeBuf = resp.AppendCommand(c.writeBuf[:0], cmd)
	wire := append([]byte(nil), c.writeBuf...)

	if err := c.pipe.send(wire); err != nil {
		c.mu.Unlock()
		c.Close(err)
		return Future{}, err
	}

	w := &waiter{kind: kind, future: f, generation: generation}
	c.receiveQueue = append(c.receiveQueue, w)
	needLoop := !c.readLoopLive
	if needLoop {
		c.readLoopLive = true
	}
	c.mu.Unlock()

	if needLoop {
		go c.readLoop()
	}
	return f, nil
}

// readLoop keeps exactly one messaging.receive() in flight whenever
// receiveQueue is non-empty (§4.3's "continuous receive loop"), draining
// eagerly and iteratively so resolving one waiter never recurses into the
// next.
func (c *Conn) readLoop() {
	for {
		v, err := c.pipe.receive()
		if err != nil {
			c.Close(err)
			return
		}

		c.mu.Lock()
		if len(c.receiveQueue) == 0 {
			// Shouldn't happen — a response arrived with nobody waiting —
			// but fail safe rather than panic on an index into an empty
			// queue.
			c.mu.Unlock()
			c.Close(fmt.Errorf("redis: %w: unsolicited response", ErrFramingMismatch))
			return
		}
		w := c.receiveQueue[0]
		c.receiveQueue = c.receiveQueue[1:]

		c.dispatch(w, v)

		if len(c.receiveQueue) == 0 {
			c.readLoopLive = false
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

// dispatch resolves one waiter against its response. Called with mu held.
func (c *Conn) dispatch(w *waiter, v resp.Value) {
	switch w.kind {
	case waiterPlain:
		w.future.resolve(v, nil)

	case waiterMultiBegin:
		w.future.resolve(v, nil)
		if v.IsError() {
			// MULTI itself was rejected; there is nothing to abort, just
			// close out the generation we opened optimistically.
			delete(c.transactions, w.generation)
			if c.openGeneration == w.generation {
				c.openGeneration = 0
			}
			c.completedGeneration++
		}

	case waiterQueued:
		c.dispatchQueued(w, v)

	case waiterExec:
		c.dispatchExec(w, v)

	case waiterDiscard:
		c.dispatchDiscard(w, v)
	}
}

func (c *Conn) dispatchQueued(w *waiter, v resp.Value) {
	tx := c.transactions[w.generation]
	if tx == nil {
		return // generation already torn down (shouldn't happen)
	}
	idx := queuedIndex(tx, w)
	if tx.aborted {
		tx.waiters[idx].resolved = true
		tx.waiters[idx].future.resolve(resp.Value{}, &TransactionError{Kind: TransactionAborted, Cause: tx.cause})
		return
	}

	if s, err := v.AsSimpleString(); err == nil && s == "QUEUED" {
		return // healthy; result arrives with EXEC
	}

	var cause error
	if v.IsError() {
		cause = ServerError(v.Str)
	} else {
		cause = fmt.Errorf("redis: expected +QUEUED, got %s", v.Type)
	}
	tx.aborted = true
	tx.cause = cause
	tx.waiters[idx].resolved = true
	tx.waiters[idx].future.resolve(resp.Value{}, &TransactionError{Kind: TransactionAborted, Cause: cause})
}

// queuedIndex finds the first not-yet-resolved txWaiter for a queuing ack.
// A healthy +QUEUED ack leaves its txWaiter unresolved, so once earlier
// commands were queued this entry is not necessarily the one the ack
// belongs to; every txWaiter of an aborted generation still ends up
// resolved with the abort cause, by a later ack or by EXEC.
func queuedIndex(tx *transaction, _ *waiter) int {
	for i, tw := range tx.waiters {
		if !tw.resolved {
			return i
		}
	}
	return len(tx.waiters) - 1
}

func (c *Conn) dispatchExec(w *waiter, v resp.Value) {
	defer c.closeGeneration(w.generation)

	tx := c.transactions[w.generation]
	if tx == nil {
		w.future.resolve(v, nil)
		return
	}
	if tx.aborted {
		resolveOpen(tx, resp.Value{}, &TransactionError{Kind: TransactionAborted, Cause: tx.cause})
		w.future.resolve(resp.Value{}, &TransactionError{Kind: TransactionAborted, Cause: tx.cause})
		return
	}

	switch {
	case v.IsError():
		cause := ServerError(v.Str)
		resolveOpen(tx, resp.Value{}, cause)
		w.future.resolve(resp.Value{}, cause)

	case v.Type == resp.TypeArray && v.ArrayNil:
		resolveOpen(tx, resp.Value{}, &TransactionError{Kind: TransactionFailed})
		w.future.resolve(v, nil)

	case v.Type == resp.TypeArray:
		open := openWaiters(tx)
		if len(v.Array) != len(open) {
			for _, tw := range open {
				tw.resolved = true
				tw.future.resolve(resp.Value{}, ErrFramingMismatch)
			}
			w.future.resolve(resp.Value{}, ErrFramingMismatch)
			// Framing mismatch means the state machine can no longer
			// trust response/command correspondence on this connection.
			c.closeLocked(ErrFramingMismatch)
			return
		}
		for i, tw := range open {
			tw.resolved = true
			tw.future.resolve(v.Array[i], nil)
		}
		w.future.resolve(v, nil)

	default:
		err := fmt.Errorf("redis: unexpected EXEC reply type %s", v.Type)
		resolveOpen(tx, resp.Value{}, err)
		w.future.resolve(resp.Value{}, err)
	}
}

func (c *Conn) dispatchDiscard(w *waiter, v resp.Value) {
	defer c.closeGeneration(w.generation)

	tx := c.transactions[w.generation]
	if tx != nil {
		resolveOpen(tx, resp.Value{}, &TransactionError{Kind: TransactionDiscarded})
	}
	w.future.resolve(v, nil)
}

func resolveOpen(tx *transaction, v resp.Value, err error) {
	for _, tw := range tx.waiters {
		if tw.resolved {
			continue
		}
		tw.resolved = true
		tw.future.resolve(v, err)
	}
}

func openWaiters(tx *transaction) []*txWaiter {
	var open []*txWaiter
	for _, tw := range tx.waiters {
		if !tw.resolved {
			open = append(open, tw)
		}
	}
	return open
}

func (c *Conn) closeGeneration(generation uint64) {
	delete(c.transactions, generation)
	if c.openGeneration == generation {
		c.openGeneration = 0
	}
	c.completedGeneration++
}

// Close fails every outstanding waiter with cause (ErrConnClosed if nil),
// then closes the underlying stream. Close is idempotent; the first call
// wins and subsequent calls are no-ops, matching §4.3's close propagation
// and §7's treatment of transport errors as fatal to the whole connection.
func (c *Conn) Close(cause error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked(cause)
}

func (c *Conn) closeLocked(cause error) error {
	if c.closed {
		return nil
	}
	if cause == nil {
		cause = ErrConnClosed
	}
	c.closed = true
	c.closeErr = cause

	for _, w := range c.receiveQueue {
		c.failWaiterOnClose(w, cause)
	}
	c.receiveQueue = nil

	for _, tx := range c.transactions {
		resolveOpen(tx, resp.Value{}, cause)
	}
	c.transactions = make(map[uint64]*transaction)
	c.openGeneration = 0

	return c.pipe.close()
}

func (c *Conn) failWaiterOnClose(w *waiter, cause error) {
	switch w.kind {
	case waiterQueued, waiterDiscard:
		// These own no caller-visible future directly tied to them beyond
		// what closeLocked already resolves via the transactions map
		// above (waiterDiscard's own future still needs resolving).
		if w.kind == waiterDiscard {
			w.future.resolve(resp.Value{}, cause)
		}
	default:
		w.future.resolve(resp.Value{}, cause)
	}
}

// WithTimeout is a convenience for building a bounded context from
// Options.RequestTimeout; a zero timeout returns ctx unchanged (no
// deadline), matching "an optional duration" in the configuration surface.
func (o Options) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.RequestTimeout == 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.RequestTimeout)
}
