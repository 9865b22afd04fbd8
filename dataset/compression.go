package dataset

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is the on-blob compression of a shard.
type Compression uint8

const (
	// CompressionNone stores plain JSON.
	CompressionNone Compression = iota
	// CompressionZSTD stores a zstd stream (better ratio, good for archives).
	CompressionZSTD
	// CompressionLZ4 stores an lz4 frame (fast).
	CompressionLZ4
)

const (
	suffixJSON = ".json"
	suffixZSTD = ".json.zst"
	suffixLZ4  = ".json.lz4"
)

// Suffix returns the blob name suffix for the compression.
func (c Compression) Suffix() string {
	switch c {
	case CompressionZSTD:
		return suffixZSTD
	case CompressionLZ4:
		return suffixLZ4
	default:
		return suffixJSON
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// CompressionFor detects the compression from a blob name.
// ok is false for names that are not dataset shards.
func CompressionFor(name string) (Compression, bool) {
	switch {
	case strings.HasSuffix(name, suffixZSTD):
		return CompressionZSTD, true
	case strings.HasSuffix(name, suffixLZ4):
		return CompressionLZ4, true
	case strings.HasSuffix(name, suffixJSON):
		return CompressionNone, true
	default:
		return CompressionNone, false
	}
}

// ZSTD decoder pool; decoders are reused across shards.
var zstdDecoderPool sync.Pool

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

func compress(w io.Writer, data []byte, c Compression) error {
	switch c {
	case CompressionNone:
		_, err := w.Write(data)
		return err
	case CompressionZSTD:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return err
		}
		if _, err := enc.Write(data); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if _, err := zw.Write(data); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	default:
		return fmt.Errorf("unsupported compression %s", c)
	}
}

// decompressor wraps r with the reader for c. release returns pooled
// state and must be called once the reader is no longer used.
func decompressor(r io.Reader, c Compression) (rd io.Reader, release func(), err error) {
	switch c {
	case CompressionNone:
		return r, func() {}, nil
	case CompressionZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, nil, err
		}
		if err := dec.Reset(r); err != nil {
			putZstdDecoder(dec)
			return nil, nil, err
		}
		return dec, func() { putZstdDecoder(dec) }, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression %s", c)
	}
}
