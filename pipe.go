package redis

import (
	"bufio"
	"net"

	"github.com/xenking/respdrive/internal/resp"
)

// pipe is the Messaging Layer of §4.2: it adapts a duplex byte stream to
// two operations, send and receive, and knows nothing about pipelining,
// FIFO ordering, or transactions — that is Conn's job. send and receive
// are safe to call concurrently with each other (one is write-only, the
// other read-only) but each is single-producer/single-consumer on its own
// side, exactly as §4.2 requires.
type pipe struct {
	conn net.Conn
	r    *resp.Reader
	br   *bufio.Reader
}

func newPipe(conn net.Conn) *pipe {
	br := bufio.NewReaderSize(conn, conservativeMSS)
	return &pipe{
		conn: conn,
		r:    resp.NewReader(br),
		br:   br,
	}
}

// send writes a fully encoded command in a single Write call so a short
// write can never leave a partial command visible on the wire — command
// atomicity is preserved regardless of the transport's flush granularity.
func (p *pipe) send(wire []byte) error {
	_, err := p.conn.Write(wire)
	return err
}

// receive blocks for the next fully parsed response.
func (p *pipe) receive() (resp.Value, error) {
	return p.r.ReadValue()
}

// close aborts both directions of the stream. Pending reads unblock with
// an error from the network layer; it is Conn's job to translate that into
// the cause every waiter sees.
func (p *pipe) close() error {
	return p.conn.Close()
}
