// Package codec selects the JSON implementation used for query trees,
// search requests and dataset shards.
//
// Shards do not record the codec that wrote them; every codec here reads
// and writes plain JSON, so they are interchangeable on the wire. Decode
// streams from a reader, which lets dataset loading decode straight out of
// a decompressor without buffering the whole shard.
package codec

import (
	"io"
	"sort"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Decode reads exactly one JSON value from r.
	Decode(r io.Reader, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

var builtin = map[string]Codec{
	GoJSON{}.Name(): GoJSON{},
	Std{}.Name():    Std{},
}

// ByName returns a built-in codec by name, case-insensitively.
// The empty name selects Default.
func ByName(name string) (Codec, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default, true
	}
	c, ok := builtin[name]
	return c, ok
}

// Names lists the built-in codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
