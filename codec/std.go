package codec

import (
	"encoding/json"
	"io"
)

// Std is backed by encoding/json. It is slower than GoJSON and serves as
// the reference when the two disagree.
type Std struct{}

func (Std) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (Std) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (Std) Decode(r io.Reader, v any) error    { return json.NewDecoder(r).Decode(v) }
func (Std) Name() string                       { return "json" }
