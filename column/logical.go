package column

import (
	"fmt"
	"io"

	"github.com/17ai/fst/block"
	"github.com/17ai/fst/compress"
	"github.com/17ai/fst/schema"
)

// Logical codes packed two bits at a time, four per byte.
const (
	logicalFalse byte = 0
	logicalTrue  byte = 1
	logicalNA    byte = 2
)

func logicalCode(v int32) byte {
	switch v {
	case 0:
		return logicalFalse
	case schema.NAInt32:
		return logicalNA
	default:
		return logicalTrue
	}
}

func logicalValue(code byte) int32 {
	switch code {
	case logicalFalse:
		return 0
	case logicalNA:
		return schema.NAInt32
	default:
		return 1
	}
}

// WriteLogical implements the v10 bool2 codec: each tri-state logical
// value is packed into 2 bits, four values per byte, and the packed
// bytes are handed to the block streamer as an elementSize-1 buffer so a
// row-range read only has to touch the bytes covering that range.
func WriteLogical(w io.Writer, lw LogicalWriter, compressLevel int, annotation string) error {
	data := lw.Data()
	n := len(data)
	packed := make([]byte, (n+3)/4)
	for i, v := range data {
		packed[i/4] |= logicalCode(v) << uint((i%4)*2)
	}

	strategy := compress.NewStrategy(compressLevel)
	if err := block.WriteBlocks(w, packed, len(packed), 1, schema.BlockSizeBool2, strategy, annotation); err != nil {
		return fmt.Errorf("logical: write: %w", err)
	}
	return nil
}

// ReadLogical reads rows [firstRow, firstRow+length) of a v10 bool2
// column starting at pos into lc, returning the column's annotation.
func ReadLogical(r io.ReaderAt, pos int64, lc LogicalColumn, firstRow, length int) (string, error) {
	if length == 0 {
		_, ann, err := block.ReadAnnotation(r, pos)
		return ann, err
	}

	byteStart := firstRow / 4
	byteEnd := (firstRow+length-1)/4 + 1
	byteLen := byteEnd - byteStart

	packed := make([]byte, byteLen)
	ann, err := block.ReadBlocks(r, pos, packed, byteStart, byteLen, 1)
	if err != nil {
		return "", fmt.Errorf("logical: read: %w", err)
	}

	dst := lc.Data()
	bitOffset := firstRow % 4
	for i := 0; i < length; i++ {
		idx := bitOffset + i
		code := (packed[idx/4] >> uint((idx%4)*2)) & 0x3
		dst[i] = logicalValue(code)
	}
	return ann, nil
}
