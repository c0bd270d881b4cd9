package redis

import "log"

// Logger receives diagnostic lines for reconnects and connection eviction.
// It is never called from the request hot path. *log.Logger already
// satisfies this interface.
type Logger interface {
	Printf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// StdLogger adapts the standard library's *log.Logger, matching the
// ErrorLog field the rest of this pack's server-side Redis implementation
// (redkit.Server) exposes for the same purpose.
func StdLogger(l *log.Logger) Logger { return stdLogger{l} }

type stdLogger struct{ l *log.Logger }

func (s stdLogger) Printf(format string, args ...interface{}) { s.l.Printf(format, args...) }
