package column

import (
	"fmt"
	"io"

	"github.com/17ai/fst/block"
	"github.com/17ai/fst/compress"
	"github.com/17ai/fst/schema"
)

// WriteByte implements the v12 byte codec: a single block-streamed raw
// byte vector, with no NA representation (spec.md leaves byte columns
// NA-less).
func WriteByte(w io.Writer, bw ByteWriter, compressLevel int, annotation string) error {
	data := bw.Data()
	strategy := compress.NewStrategy(compressLevel)
	if err := block.WriteBlocks(w, data, len(data), 1, schema.BlockSizeByte, strategy, annotation); err != nil {
		return fmt.Errorf("byte: write: %w", err)
	}
	return nil
}

// ReadByte reads rows [firstRow, firstRow+length) of a v12 byte column
// starting at pos into bc, returning the column's annotation.
func ReadByte(r io.ReaderAt, pos int64, bc ByteColumn, firstRow, length int) (string, error) {
	dst := bc.Data()
	ann, err := block.ReadBlocks(r, pos, dst[:length], firstRow, length, 1)
	if err != nil {
		return "", fmt.Errorf("byte: read: %w", err)
	}
	return ann, nil
}
