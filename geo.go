package redis

import (
	"fmt"
	"strconv"

	"github.com/xenking/respdrive/internal/resp"
)

// GeoPos is one member's coordinates as returned by GEOPOS: an
// array-of-arrays reply where a missing member is a nested Nil array
// rather than a Nil bulk string, the one reply shape in this module's
// command subset that needs its own parser instead of composing the
// generic ParseArray/ParseMap helpers.
type GeoPos struct {
	Longitude float64
	Latitude  float64
	Member    bool // false if the member has no position (not in the key)
}

// ParseGeoPos parses GEOPOS's reply: an array with one entry per requested
// member, each entry either a two-element array of longitude/latitude
// bulk strings, or a Nil array for a member absent from the key.
func ParseGeoPos(v resp.Value, err error) ([]GeoPos, error) {
	if err != nil {
		return nil, err
	}
	if v.IsError() {
		return nil, ServerError(v.Str)
	}
	elems, ok, err := v.AsElems()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	out := make([]GeoPos, len(elems))
	for i, e := range elems {
		if e.Type != resp.TypeArray {
			return nil, fmt.Errorf("redis: geopos element %d: %w: want array, got %s", i, resp.ErrUnexpectedType, e.Type)
		}
		if e.ArrayNil {
			continue // GeoPos{Member: false}
		}
		if len(e.Array) != 2 {
			return nil, fmt.Errorf("redis: geopos element %d: %w: want 2 coordinates, got %d", i, resp.ErrUnexpectedType, len(e.Array))
		}
		lon, err := geoCoord(e.Array[0])
		if err != nil {
			return nil, fmt.Errorf("redis: geopos element %d longitude: %w", i, err)
		}
		lat, err := geoCoord(e.Array[1])
		if err != nil {
			return nil, fmt.Errorf("redis: geopos element %d latitude: %w", i, err)
		}
		out[i] = GeoPos{Longitude: lon, Latitude: lat, Member: true}
	}
	return out, nil
}

func geoCoord(v resp.Value) (float64, error) {
	data, ok, err := v.AsBytes()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("redis: nil coordinate")
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return 0, fmt.Errorf("redis: invalid coordinate %q: %w", data, err)
	}
	return f, nil
}
