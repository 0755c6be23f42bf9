package column

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/17ai/fst/block"
	"github.com/17ai/fst/compress"
	"github.com/17ai/fst/schema"
)

// WriteInt64 implements the v11 int64 codec: a single block-streamed
// little-endian int64 vector, NA encoded as schema.NAInt64.
func WriteInt64(w io.Writer, iw Int64Writer, compressLevel int, annotation string) error {
	data := iw.Data()
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], uint64(v))
	}
	strategy := compress.NewStrategy(compressLevel)
	if err := block.WriteBlocks(w, buf, len(data), 8, schema.BlockSizeInt64, strategy, annotation); err != nil {
		return fmt.Errorf("int64: write: %w", err)
	}
	return nil
}

// ReadInt64 reads rows [firstRow, firstRow+length) of a v11 int64 column
// starting at pos into ic, returning the column's annotation.
func ReadInt64(r io.ReaderAt, pos int64, ic Int64Column, firstRow, length int) (string, error) {
	buf := make([]byte, 8*length)
	ann, err := block.ReadBlocks(r, pos, buf, firstRow, length, 8)
	if err != nil {
		return "", fmt.Errorf("int64: read: %w", err)
	}
	dst := ic.Data()
	for i := 0; i < length; i++ {
		dst[i] = int64(binary.LittleEndian.Uint64(buf[i*8 : i*8+8]))
	}
	return ann, nil
}
