package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdCompressor wraps klauspost/compress/zstd behind the Compressor
// contract. level is the engine's 1..22 scale (spec.md's classic zstd
// range); klauspost's encoder exposes four speed tiers instead, so level
// is bucketed onto the closest tier.
type zstdCompressor struct{}

func (zstdCompressor) Compress(src []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel(level)))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(src, nil), nil
}

func (zstdCompressor) Decompress(src []byte, expectedSize int) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer dec.Close()
	var hint []byte
	if expectedSize > 0 {
		hint = make([]byte, 0, expectedSize)
	}
	out, err := dec.DecodeAll(src, hint)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return out, nil
}

func zstdLevel(level int) zstd.EncoderLevel {
	switch {
	case level >= 19:
		return zstd.SpeedBestCompression
	case level >= 12:
		return zstd.SpeedBetterCompression
	case level >= 4:
		return zstd.SpeedDefault
	default:
		return zstd.SpeedFastest
	}
}
