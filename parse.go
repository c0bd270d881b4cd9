package redis

import (
	"fmt"
	"strconv"

	"github.com/xenking/respdrive/internal/resp"
)

// ExpectOK parses a SimpleString "+OK" reply, the common shape for
// acknowledgement-only commands (SET, SELECT, AUTH, MULTI, ...).
func ExpectOK(v resp.Value, err error) (struct{}, error) {
	if err != nil {
		return struct{}{}, err
	}
	if v.IsError() {
		return struct{}{}, ServerError(v.Str)
	}
	s, err := v.AsSimpleString()
	if err != nil {
		return struct{}{}, err
	}
	if s != "OK" {
		return struct{}{}, fmt.Errorf("redis: expected OK, got %q", s)
	}
	return struct{}{}, nil
}

// ParseInt parses an Integer reply (INCR, LLEN, EXISTS, ...).
func ParseInt(v resp.Value, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	if v.IsError() {
		return 0, ServerError(v.Str)
	}
	return v.AsInt()
}

// ParseBool parses the Integer 0/1 reply used by SETNX, EXPIRE, SISMEMBER
// and similar predicates.
func ParseBool(v resp.Value, err error) (bool, error) {
	n, err := ParseInt(v, err)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// ParseNullableInt parses an Integer reply that may instead arrive as a Nil
// bulk string, the shape OBJECT IDLETIME and similar commands use to signal
// "no such key".
func ParseNullableInt(v resp.Value, err error) (int64, bool, error) {
	if err != nil {
		return 0, false, err
	}
	if v.IsError() {
		return 0, false, ServerError(v.Str)
	}
	if v.Type == resp.TypeBulk && v.BulkNil {
		return 0, false, nil
	}
	n, err := v.AsInt()
	return n, true, err
}

// ParseSimpleString parses a SimpleString reply verbatim (PING's "+PONG",
// TYPE's type name, ...).
func ParseSimpleString(v resp.Value, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if v.IsError() {
		return "", ServerError(v.Str)
	}
	return v.AsSimpleString()
}

// ParseBulk parses a Bulk reply as raw bytes. ok is false for the Nil
// reply (GET on a missing key).
func ParseBulk(v resp.Value, err error) (data []byte, ok bool, rerr error) {
	if err != nil {
		return nil, false, err
	}
	if v.IsError() {
		return nil, false, ServerError(v.Str)
	}
	return v.AsBytes()
}

// ParseString decodes a Bulk reply as text in charset. Only "utf-8" (the
// default, and the only charset this module implements conversions for) is
// supported; any other value is rejected rather than silently mis-decoded.
func ParseString(charset string, v resp.Value, err error) (s string, ok bool, rerr error) {
	data, ok, err := ParseBulk(v, err)
	if err != nil || !ok {
		return "", ok, err
	}
	switch charset {
	case "", "utf-8", "UTF-8":
		return string(data), true, nil
	default:
		return "", false, fmt.Errorf("redis: unsupported charset %q", charset)
	}
}

// ParseDouble parses the Bulk-string-encoded floating point replies used by
// sorted-set scores (ZSCORE, ZINCRBY, GEODIST, ...), including the special
// "inf"/"-inf" spellings Redis emits.
func ParseDouble(v resp.Value, err error) (float64, error) {
	data, ok, err := ParseBulk(v, err)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("redis: expected bulk string for double, got nil")
	}
	f, perr := strconv.ParseFloat(string(data), 64)
	if perr != nil {
		return 0, fmt.Errorf("redis: invalid double %q: %w", data, perr)
	}
	return f, nil
}

// ParseArray parses an Array reply element-wise with elem, preserving
// order. ok is false for the NilArray reply.
func ParseArray[T any](v resp.Value, err error, elem func(resp.Value) (T, error)) (out []T, ok bool, rerr error) {
	if err != nil {
		return nil, false, err
	}
	if v.IsError() {
		return nil, false, ServerError(v.Str)
	}
	elems, ok, err := v.AsElems()
	if err != nil || !ok {
		return nil, ok, err
	}
	out = make([]T, len(elems))
	for i, e := range elems {
		out[i], err = elem(e)
		if err != nil {
			return nil, true, fmt.Errorf("redis: element %d: %w", i, err)
		}
	}
	return out, true, nil
}

// ParseSet parses an Array reply into a set keyed by elem's result,
// matching how SMEMBERS/SDIFF/SUNION reply shapes are typically consumed.
func ParseSet[T comparable](v resp.Value, err error, elem func(resp.Value) (T, error)) (out map[T]struct{}, ok bool, rerr error) {
	list, ok, err := ParseArray(v, err, elem)
	if err != nil || !ok {
		return nil, ok, err
	}
	out = make(map[T]struct{}, len(list))
	for _, k := range list {
		out[k] = struct{}{}
	}
	return out, true, nil
}

// ParseMap parses a flat Array reply of alternating key/value elements
// (HGETALL's shape) into a map.
func ParseMap[K comparable, V any](v resp.Value, err error, key func(resp.Value) (K, error), val func(resp.Value) (V, error)) (out map[K]V, ok bool, rerr error) {
	if err != nil {
		return nil, false, err
	}
	if v.IsError() {
		return nil, false, ServerError(v.Str)
	}
	elems, ok, err := v.AsElems()
	if err != nil || !ok {
		return nil, ok, err
	}
	if len(elems)%2 != 0 {
		return nil, true, fmt.Errorf("redis: %w: odd-length map reply", resp.ErrUnexpectedType)
	}
	out = make(map[K]V, len(elems)/2)
	for i := 0; i < len(elems); i += 2 {
		k, err := key(elems[i])
		if err != nil {
			return nil, true, fmt.Errorf("redis: map key %d: %w", i/2, err)
		}
		v, err := val(elems[i+1])
		if err != nil {
			return nil, true, fmt.Errorf("redis: map value %d: %w", i/2, err)
		}
		out[k] = v
	}
	return out, true, nil
}

// BulkString is an elem/key/val helper for ParseArray/ParseSet/ParseMap:
// decodes a Bulk element as UTF-8 text.
func BulkString(v resp.Value) (string, error) {
	data, ok, err := v.AsBytes()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return string(data), nil
}

// BulkBytes is an elem/key/val helper: decodes a Bulk element as raw bytes.
func BulkBytes(v resp.Value) ([]byte, error) {
	data, _, err := v.AsBytes()
	return data, err
}

// Int64 is an elem/key/val helper: decodes an Integer element.
func Int64(v resp.Value) (int64, error) {
	return v.AsInt()
}
