package compress

// Plan is a strategy's per-block decision: which algorithm to persist and
// at what quality level(s) to run it.
type Plan struct {
	Algorithm   Algorithm
	Level       int // primary stage level (LZ4 level for LZ4 and LZ4ZSTD)
	SecondLevel int // second stage level for LZ4ZSTD (ZSTD level)
}

// StreamCompressor decides, block by block, how a column's data should be
// compressed. Selection is deterministic and block-index-driven so the
// same column compressed twice at the same setting produces byte-identical
// output (spec.md's round-trip and determinism properties).
type StreamCompressor interface {
	// CompressBufferSize is called once before the first block, mirroring
	// the original engine's scratch-buffer sizing call; strategies that
	// need no such buffer implement it as a no-op.
	CompressBufferSize(blockSizeBytes int)
	Plan(blockIndex int) Plan
}

// UncompressedStrategy is used for compress == 0: every block is written
// verbatim.
type UncompressedStrategy struct{}

func (UncompressedStrategy) CompressBufferSize(int) {}

func (UncompressedStrategy) Plan(int) Plan {
	return Plan{Algorithm: None}
}

// LinearCompressor alternates uncompressed and LZ4-compressed blocks such
// that the expected fraction of compressed blocks equals compression/50,
// for 1 <= compression <= 50. LZ4 runs at level 2*compression.
type LinearCompressor struct {
	compression int
	acc         float64
}

func NewLinearCompressor(compression int) *LinearCompressor {
	return &LinearCompressor{compression: compression}
}

func (c *LinearCompressor) CompressBufferSize(int) {}

func (c *LinearCompressor) Plan(blockIndex int) Plan {
	frac := float64(c.compression) / 50.0
	c.acc += frac
	if c.acc >= 1.0 {
		c.acc -= 1.0
		return Plan{Algorithm: LZ4, Level: 2 * c.compression}
	}
	return Plan{Algorithm: None}
}

// CompositeCompressor LZ4-compresses every block at level 100, then
// additionally ZSTD-compresses a deterministic fraction
// 2*(compression-50)/100 of those blocks at level 20, for
// 51 <= compression <= 100.
type CompositeCompressor struct {
	compression int
	acc         float64
}

func NewCompositeCompressor(compression int) *CompositeCompressor {
	return &CompositeCompressor{compression: compression}
}

func (c *CompositeCompressor) CompressBufferSize(int) {}

func (c *CompositeCompressor) Plan(blockIndex int) Plan {
	frac := 2.0 * float64(c.compression-50) / 100.0
	c.acc += frac
	if c.acc >= 1.0 {
		c.acc -= 1.0
		return Plan{Algorithm: LZ4ZSTD, Level: 100, SecondLevel: 20}
	}
	return Plan{Algorithm: LZ4, Level: 100}
}

// NewStrategy builds the strategy matching compress per spec.md §4.3's
// thresholds.
func NewStrategy(compress int) StreamCompressor {
	switch {
	case compress == 0:
		return UncompressedStrategy{}
	case compress <= 50:
		return NewLinearCompressor(compress)
	default:
		return NewCompositeCompressor(compress)
	}
}

// Apply runs plan against block, returning the bytes to persist for it.
func Apply(plan Plan, block []byte) ([]byte, error) {
	switch plan.Algorithm {
	case None:
		return block, nil
	case LZ4:
		return lz4Compressor{}.Compress(block, plan.Level)
	case ZSTD:
		return zstdCompressor{}.Compress(block, plan.Level)
	case LZ4ZSTD:
		stage1, err := lz4Compressor{}.Compress(block, plan.Level)
		if err != nil {
			return nil, err
		}
		return zstdCompressor{}.Compress(stage1, plan.SecondLevel)
	default:
		return block, nil
	}
}
