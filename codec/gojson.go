package codec

import (
	"io"

	gojson "github.com/goccy/go-json"
)

// GoJSON is backed by github.com/goccy/go-json.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (GoJSON) Decode(r io.Reader, v any) error    { return gojson.NewDecoder(r).Decode(v) }
func (GoJSON) Name() string                       { return "go-json" }
