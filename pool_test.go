package redis

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/xenking/respdrive/internal/resp"
)

// startEchoServer runs a minimal RESP server on loopback that answers every
// command with +OK, enough to exercise Dial/Pool/Client without a real
// Redis instance.
func startEchoServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveEcho(conn)
		}
	}()
	return ln.Addr().String()
}

func serveEcho(conn net.Conn) {
	defer conn.Close()
	br := bufio.NewReader(conn)
	r := resp.NewReader(br)
	for {
		if _, err := r.ReadValue(); err != nil {
			return
		}
		if _, err := conn.Write([]byte("+OK\r\n")); err != nil {
			return
		}
	}
}

func TestDialAndDo(t *testing.T) {
	addr := startEchoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, err := Dial(ctx, Options{Addr: addr})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(nil)

	f, err := conn.Ping()
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	v, err := f.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if v.Str != "OK" {
		t.Errorf("got %q, want OK", v.Str)
	}
}

func TestPoolAcquireReleaseReuse(t *testing.T) {
	addr := startEchoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := NewPool(Options{Addr: addr, MaxConnections: 2})
	defer p.Shutdown()

	c1, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	p.Release(c1)

	c2, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	if c1 != c2 {
		t.Errorf("expected the idle connection to be reused")
	}
	p.Release(c2)
}

func TestPoolDiscardsUnhealthyConnection(t *testing.T) {
	addr := startEchoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := NewPool(Options{Addr: addr, MaxConnections: 1})
	defer p.Shutdown()

	c1, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	c1.Close(nil) // now unhealthy
	p.Release(c1)

	c2, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("reacquire after discard: %v", err)
	}
	if c1 == c2 {
		t.Errorf("expected a fresh connection after the unhealthy one was discarded")
	}
	p.Release(c2)
}

func TestClientDoAcquiresAndReleases(t *testing.T) {
	addr := startEchoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := NewClient(Options{Addr: addr, MaxConnections: 1})
	defer client.Close()

	v, err := client.Do(ctx, resp.NewCommand("PING"))
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if v.Str != "OK" {
		t.Errorf("got %q, want OK", v.Str)
	}

	// The connection must have been released back to the pool: a second
	// call should succeed without exceeding MaxConnections=1.
	v, err = client.Do(ctx, resp.NewCommand("PING"))
	if err != nil {
		t.Fatalf("second do: %v", err)
	}
	if v.Str != "OK" {
		t.Errorf("got %q, want OK", v.Str)
	}
}

func TestPoolAcquireAfterShutdownReturnsErrPoolShutdown(t *testing.T) {
	addr := startEchoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := NewPool(Options{Addr: addr, MaxConnections: 1})
	p.Shutdown()

	if _, err := p.Acquire(ctx); err != ErrPoolShutdown {
		t.Fatalf("Acquire after Shutdown = %v, want ErrPoolShutdown", err)
	}
}

// TestClientDoAfterCloseReturnsImmediately guards against dialWithRetry
// looping forever on a background context: once the pool is shut down,
// Client.Do must surface ErrPoolShutdown instead of retrying every
// reconnectDelay until the context (here, one with no deadline) is done.
func TestClientDoAfterCloseReturnsImmediately(t *testing.T) {
	addr := startEchoServer(t)
	client := NewClient(Options{Addr: addr, MaxConnections: 1})
	client.Close()

	done := make(chan error, 1)
	go func() {
		_, err := client.Do(context.Background(), resp.NewCommand("PING"))
		done <- err
	}()

	select {
	case err := <-done:
		if err != ErrPoolShutdown {
			t.Fatalf("Do after Close = %v, want ErrPoolShutdown", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Do after Close did not return promptly; dialWithRetry is looping")
	}
}
