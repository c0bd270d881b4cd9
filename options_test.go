package redis

import "testing"

func TestNormalizeAddr(t *testing.T) {
	golden := []struct{ Addr, Normal string }{
		{"", "localhost:6379"},
		{":", "localhost:6379"},
		{"test.host", "test.host:6379"},
		{"test.host:", "test.host:6379"},
		{":99", "localhost:99"},
		{"/var/redis/../run/redis.sock", "/var/run/redis.sock"},
	}
	for _, gold := range golden {
		if got := normalizeAddr(gold.Addr); got != gold.Normal {
			t.Errorf("got %q for %q, want %q", got, gold.Addr, gold.Normal)
		}
	}
}

func TestIsUnixAddr(t *testing.T) {
	cases := map[string]bool{
		"":                  false,
		"localhost:6379":    false,
		"/var/run/redis.sock": true,
	}
	for addr, want := range cases {
		if got := isUnixAddr(addr); got != want {
			t.Errorf("isUnixAddr(%q) = %v, want %v", addr, got, want)
		}
	}
}

func TestOptionsNormalizedDefaults(t *testing.T) {
	o := Options{}.normalized()
	if o.Addr != "localhost:6379" {
		t.Errorf("Addr = %q, want localhost:6379", o.Addr)
	}
	if o.MaxConnections != defaultMaxConnections {
		t.Errorf("MaxConnections = %d, want %d", o.MaxConnections, defaultMaxConnections)
	}
	if o.Charset != defaultCharset {
		t.Errorf("Charset = %q, want %q", o.Charset, defaultCharset)
	}
	if o.ConnectTimeout != defaultConnectTimeout {
		t.Errorf("ConnectTimeout = %v, want %v", o.ConnectTimeout, defaultConnectTimeout)
	}
	if o.Logger == nil {
		t.Errorf("Logger should default to a non-nil no-op logger")
	}
}

func TestOptionsNormalizedPreservesOverrides(t *testing.T) {
	o := Options{Addr: "example.com:1234", MaxConnections: 3}.normalized()
	if o.Addr != "example.com:1234" {
		t.Errorf("Addr = %q, want example.com:1234", o.Addr)
	}
	if o.MaxConnections != 3 {
		t.Errorf("MaxConnections = %d, want 3", o.MaxConnections)
	}
}
