// Command respdrive-bench pipelines a configurable number of PING commands
// over a single connection and reports throughput, demonstrating the
// pipelining gain a single multiplexed connection buys over one
// round trip per command.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	redis "github.com/xenking/respdrive"
)

func main() {
	addr := flag.String("addr", "localhost:6379", "server address (host:port, or /path for a unix socket)")
	n := flag.Int("n", 10000, "number of PING commands to pipeline")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := redis.Dial(ctx, redis.Options{
		Addr:   *addr,
		Logger: redis.StdLogger(log.New(os.Stderr, "", log.LstdFlags)),
	})
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close(nil)

	start := time.Now()

	futures := make([]redis.Future, *n)
	for i := range futures {
		f, err := conn.Ping()
		if err != nil {
			log.Fatalf("submit %d: %v", i, err)
		}
		futures[i] = f
	}
	for i, f := range futures {
		if _, err := f.Wait(ctx); err != nil {
			log.Fatalf("wait %d: %v", i, err)
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("%d commands in %s (%.0f/s)\n", *n, elapsed, float64(*n)/elapsed.Seconds())
}
