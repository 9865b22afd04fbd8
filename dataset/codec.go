package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bgcdb/clusterq/codec"
)

var (
	// ErrVersionMismatch is returned when shards disagree on the dataset version.
	ErrVersionMismatch = errors.New("dataset version mismatch")
	// ErrUnknownFormat is returned for blob names without a dataset suffix.
	ErrUnknownFormat = errors.New("unknown dataset format")
	// ErrNoShards is returned when a prefix holds no dataset shards.
	ErrNoShards = errors.New("no dataset shards")
)

// Encode writes ds to w using c and the given compression.
func Encode(w io.Writer, ds *Dataset, c codec.Codec, comp Compression) error {
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return compress(w, data, comp)
}

// Marshal encodes ds for a blob named name.
func Marshal(name string, ds *Dataset, c codec.Codec) ([]byte, error) {
	comp, ok := CompressionFor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, ds, c, comp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes a blob named name.
func Decode(name string, data []byte, c codec.Codec) (*Dataset, error) {
	return DecodeReader(name, bytes.NewReader(data), c)
}

// DecodeReader decodes a shard from r; the compression is taken from name.
func DecodeReader(name string, r io.Reader, c codec.Codec) (*Dataset, error) {
	comp, ok := CompressionFor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	if c == nil {
		c = codec.Default
	}
	rd, release, err := decompressor(r, comp)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", name, err)
	}
	defer release()

	var ds Dataset
	if err := c.Decode(rd, &ds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &ds, nil
}
