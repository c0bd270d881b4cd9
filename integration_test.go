//go:build redistest

package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/xenking/respdrive/internal/resp"
)

// TestIntegrationAgainstLiveServer cross-checks this driver's wire encoding
// against a reference client (go-redis/v9): it SETs a key with go-redis
// and GETs it back with this module's Conn, and vice versa, proving both
// speak the same bytes to the same server. Run with:
//
//	REDIS_ADDR=localhost:6379 go test -tags redistest -run Integration ./...
func TestIntegrationAgainstLiveServer(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("set REDIS_ADDR to run the live-server integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := Dial(ctx, Options{Addr: addr})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(nil)

	ref := goredis.NewClient(&goredis.Options{Addr: addr})
	defer ref.Close()

	const key = "respdrive-integration-test-key"

	if err := ref.Set(ctx, key, "from-goredis", 0).Err(); err != nil {
		t.Fatalf("go-redis SET: %v", err)
	}
	f, err := conn.Get(key)
	if err != nil {
		t.Fatalf("submit GET: %v", err)
	}
	data, ok, err := ParseBulk(f.Wait(ctx))
	if err != nil || !ok || string(data) != "from-goredis" {
		t.Fatalf("GET = (%q, %v, %v), want (from-goredis, true, nil)", data, ok, err)
	}

	ef, err := conn.Do(buildCmd(specSet, key, "from-respdrive"))
	if err != nil {
		t.Fatalf("submit SET: %v", err)
	}
	if _, err := ExpectOK(ef.Wait(ctx)); err != nil {
		t.Fatalf("respdrive SET: %v", err)
	}
	got, err := ref.Get(ctx, key).Result()
	if err != nil || got != "from-respdrive" {
		t.Fatalf("go-redis GET = (%q, %v), want (from-respdrive, nil)", got, err)
	}

	// A transaction round trip, checked the same way.
	tx, multiFuture, err := conn.Multi()
	if err != nil {
		t.Fatalf("multi: %v", err)
	}
	incrFuture, err := tx.Queue(resp.NewCommand("INCR", []byte(key+"-counter")))
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	execFuture, err := tx.Exec()
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if _, err := multiFuture.Wait(ctx); err != nil {
		t.Fatalf("multi future: %v", err)
	}
	if _, err := ParseInt(incrFuture.Wait(ctx)); err != nil {
		t.Fatalf("incr future: %v", err)
	}
	if _, err := execFuture.Wait(ctx); err != nil {
		t.Fatalf("exec future: %v", err)
	}
}
