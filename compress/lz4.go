package compress

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// lz4Compressor wraps pierrec/lz4/v4 behind the Compressor contract.
// level is a 1..100 "quality" knob (spec.md's scale), mapped onto lz4's
// own 0..9 compression-level range.
type lz4Compressor struct{}

func (lz4Compressor) Compress(src []byte, level int) ([]byte, error) {
	var c lz4.Compressor
	if level > 20 {
		var hc lz4.CompressorHC
		hc.Level = lz4Level(level)
		dst := make([]byte, lz4.CompressBlockBound(len(src)))
		n, err := hc.CompressBlock(src, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 hc compress: %w", err)
		}
		if n == 0 {
			// incompressible input: lz4 signals this by writing nothing.
			return append([]byte{1}, src...), nil
		}
		return append([]byte{0}, dst[:n]...), nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := c.CompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 {
		return append([]byte{1}, src...), nil
	}
	return append([]byte{0}, dst[:n]...), nil
}

func (lz4Compressor) Decompress(src []byte, expectedSize int) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}
	stored, payload := src[0], src[1:]
	if stored == 1 {
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	}
	dst := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(payload, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return dst[:n], nil
}

// lz4Level maps the engine's 1..100 quality scale onto lz4's HC level
// range (lz4.Level1..lz4.Level9), preserving monotonicity at the extremes.
func lz4Level(level int) lz4.CompressionLevel {
	switch {
	case level >= 100:
		return lz4.Level9
	case level >= 90:
		return lz4.Level8
	case level >= 80:
		return lz4.Level7
	case level >= 70:
		return lz4.Level6
	case level >= 60:
		return lz4.Level5
	case level >= 50:
		return lz4.Level4
	case level >= 40:
		return lz4.Level3
	case level >= 30:
		return lz4.Level2
	default:
		return lz4.Level1
	}
}
