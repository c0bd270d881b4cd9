package redis

import (
	"net"
	"path/filepath"
	"time"
)

// Default tuning, grounded on the teacher's own fixed settings.
const (
	// IPv6 minimum MTU of 1280 bytes, minus a 40 byte IP header, minus a
	// 32 byte TCP header (with timestamps). Used as the read buffer size
	// so a single response frame typically needs one syscall.
	conservativeMSS = 1208

	defaultMaxConnections = 10
	defaultConnectTimeout = time.Second
	defaultCharset        = "utf-8"

	// Idle period after a failed connection attempt before retrying.
	reconnectDelay = 100 * time.Millisecond
)

// Options is the configuration surface for a Client or a bare Conn. All
// fields are optional; the zero value is a usable default pointing at
// localhost:6379.
type Options struct {
	// Addr is the server's host:port, or an absolute Unix socket path
	// (e.g. "/var/run/redis.sock"). The empty string defaults to
	// "localhost:6379".
	Addr string

	// MaxConnections bounds the Pool. Zero defaults to 10.
	MaxConnections int

	// Charset names the text encoding for the connection. Zero value
	// defaults to UTF-8. The parsers do not read it: ParseString takes its
	// charset as an argument and supports UTF-8 only.
	Charset string

	// ConnectTimeout bounds establishing the TCP/Unix connection. Zero
	// defaults to one second.
	ConnectTimeout time.Duration

	// RequestTimeout, if nonzero, is the deadline Options.WithTimeout puts
	// on a context for waiting on a command. Expiry ends Future.Wait with
	// the context's error; the connection stays open and the command's
	// waiter is still resolved when its response arrives.
	RequestTimeout time.Duration

	// Username and Password, if set, run AUTH immediately after connect.
	// Username alone (without Password) is not valid and is ignored.
	Username string
	Password string

	// DB selects the logical database via SELECT immediately after
	// connect and AUTH. Zero means "do not send SELECT".
	DB int

	// Logger receives reconnect/eviction diagnostics. Nil disables
	// logging; nothing on the request hot path logs regardless.
	Logger Logger
}

// normalized returns a copy of o with every zero field replaced by its
// default.
func (o Options) normalized() Options {
	o.Addr = normalizeAddr(o.Addr)
	if o.MaxConnections == 0 {
		o.MaxConnections = defaultMaxConnections
	}
	if o.Charset == "" {
		o.Charset = defaultCharset
	}
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	return o
}

func (o Options) network() string {
	if isUnixAddr(o.Addr) {
		return "unix"
	}
	return "tcp"
}

func isUnixAddr(s string) bool {
	return len(s) != 0 && s[0] == '/'
}

// normalizeAddr fills in the default host and port, the way the teacher's
// own NewClient does: the empty string becomes "localhost:6379", a bare
// host or port is completed, and Unix socket paths are cleaned rather than
// split.
func normalizeAddr(s string) string {
	if isUnixAddr(s) {
		return filepath.Clean(s)
	}

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		host = s
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(host, port)
}
