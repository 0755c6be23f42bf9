package column

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/17ai/fst/block"
	"github.com/17ai/fst/compress"
	"github.com/17ai/fst/schema"
)

// WriteDouble implements the v9 double codec: a single block-streamed
// IEEE 754 binary64 vector. NA is represented as Go's math.NaN(), the
// same bit pattern the original format reserves for missing doubles.
func WriteDouble(w io.Writer, dw DoubleWriter, compressLevel int, annotation string) error {
	data := dw.Data()
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], math.Float64bits(v))
	}
	strategy := compress.NewStrategy(compressLevel)
	if err := block.WriteBlocks(w, buf, len(data), 8, schema.BlockSizeDouble64, strategy, annotation); err != nil {
		return fmt.Errorf("double: write: %w", err)
	}
	return nil
}

// ReadDouble reads rows [firstRow, firstRow+length) of a v9 double column
// starting at pos into dc, returning the column's annotation.
func ReadDouble(r io.ReaderAt, pos int64, dc DoubleColumn, firstRow, length int) (string, error) {
	buf := make([]byte, 8*length)
	ann, err := block.ReadBlocks(r, pos, buf, firstRow, length, 8)
	if err != nil {
		return "", fmt.Errorf("double: read: %w", err)
	}
	dst := dc.Data()
	for i := 0; i < length; i++ {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8 : i*8+8]))
	}
	return ann, nil
}
