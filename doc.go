// Package redis implements a client-side driver for the Redis
// serialization protocol (RESP v2). A single Conn multiplexes an
// arbitrary number of concurrently submitted commands onto one duplex
// byte stream while preserving FIFO response ordering, supports
// server-side transactions (MULTI/EXEC/DISCARD), exposes typed response
// parsers, and guarantees that every outstanding command resolves — with
// either its result or the cause — on any connection failure.
//
// Dial opens a Conn directly; NewClient wraps a pool of them for callers
// that want acquire/release semantics instead of managing connections by
// hand.
package redis
