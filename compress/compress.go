// Package compress implements the two block compression primitives the
// store engine is allowed to use, and the per-block compression strategies
// (uncompressed, linear mix, composite) that decide which one a given
// block gets.
package compress

import "fmt"

// Algorithm identifies how a single block was compressed. It is persisted
// per block so a reader never has to re-derive the write-time strategy.
type Algorithm uint8

const (
	// None means the block was written verbatim.
	None Algorithm = 0
	// LZ4 means the block was LZ4-compressed.
	LZ4 Algorithm = 1
	// ZSTD means the block was ZSTD-compressed.
	ZSTD Algorithm = 2
	// LZ4ZSTD means the block was LZ4-compressed, then the result was
	// ZSTD-compressed on top (the composite strategy's two-stage leg).
	LZ4ZSTD Algorithm = 3
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	case LZ4ZSTD:
		return "lz4+zstd"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// Compressor is the uniform contract the engine consumes from a
// third-party byte-stream codec.
type Compressor interface {
	Compress(src []byte, level int) ([]byte, error)
	Decompress(src []byte, expectedSize int) ([]byte, error)
}

// Decode decompresses a block payload written under algorithm algo,
// dispatching to the matching primitive(s). For LZ4ZSTD the stages are
// reversed: ZSTD first, then LZ4, undoing the write-time order.
func Decode(algo Algorithm, payload []byte, expectedSize int) ([]byte, error) {
	switch algo {
	case None:
		return payload, nil
	case LZ4:
		return lz4Compressor{}.Decompress(payload, expectedSize)
	case ZSTD:
		return zstdCompressor{}.Decompress(payload, expectedSize)
	case LZ4ZSTD:
		stage1, err := zstdCompressor{}.Decompress(payload, -1)
		if err != nil {
			return nil, fmt.Errorf("zstd stage of composite block: %w", err)
		}
		return lz4Compressor{}.Decompress(stage1, expectedSize)
	default:
		return nil, fmt.Errorf("unknown block algorithm %d", uint8(algo))
	}
}
