package redis

import (
	"context"

	"github.com/xenking/respdrive/internal/resp"
)

// result is what a waiter's channel carries: exactly one of a decoded
// value or the error that resolved it instead.
type result struct {
	val resp.Value
	err error
}

// Future is a single-shot handle to a command's eventual response — the
// Go rendition of the source material's promise. It is produced by
// Conn.Do and resolved exactly once, either by the response arriving in
// FIFO order or by the connection closing.
type Future struct {
	ch chan result
}

func newFuture() Future {
	return Future{ch: make(chan result, 1)}
}

func (f Future) resolve(v resp.Value, err error) {
	f.ch <- result{val: v, err: err}
}

// Wait blocks until the command resolves or ctx is done. Per §5's
// cancellation semantics, a context cancellation only stops this call from
// waiting — it does not remove the command's waiter from the connection's
// queue, since doing so would desynchronize FIFO pairing for every command
// behind it. The response (or close cause) still resolves the waiter; it
// is simply never observed by this Wait call.
func (f Future) Wait(ctx context.Context) (resp.Value, error) {
	select {
	case r := <-f.ch:
		return r.val, r.err
	case <-ctx.Done():
		return resp.Value{}, ctx.Err()
	}
}
