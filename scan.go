package redis

import (
	"fmt"

	"github.com/xenking/respdrive/internal/resp"
)

// ScanResult is the two-element reply shared by SCAN, HSCAN, SSCAN and
// ZSCAN: a cursor to resume from (0 means iteration is complete) and the
// batch of elements found so far.
type ScanResult struct {
	Cursor string
	Elems  []string
}

// ParseScan parses a SCAN-family reply: a top-level two-element array
// whose first element is the cursor (a Bulk string of decimal digits, kept
// as text since it is only ever round-tripped, never arithmetically used)
// and whose second element is the Array of result elements.
func ParseScan(v resp.Value, err error) (ScanResult, error) {
	if err != nil {
		return ScanResult{}, err
	}
	if v.IsError() {
		return ScanResult{}, ServerError(v.Str)
	}
	elems, ok, err := v.AsElems()
	if err != nil {
		return ScanResult{}, err
	}
	if !ok || len(elems) != 2 {
		return ScanResult{}, fmt.Errorf("redis: %w: scan reply must be a 2-element array", resp.ErrUnexpectedType)
	}

	cursor, ok, err := elems[0].AsBytes()
	if err != nil {
		return ScanResult{}, fmt.Errorf("redis: scan cursor: %w", err)
	}
	if !ok {
		return ScanResult{}, fmt.Errorf("redis: scan cursor: nil bulk string")
	}

	items, ok, err := ParseArray(elems[1], nil, BulkString)
	if err != nil {
		return ScanResult{}, fmt.Errorf("redis: scan elements: %w", err)
	}
	if !ok {
		items = nil
	}
	return ScanResult{Cursor: string(cursor), Elems: items}, nil
}
