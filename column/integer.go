package column

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/17ai/fst/block"
	"github.com/17ai/fst/compress"
	"github.com/17ai/fst/schema"
)

// WriteInt32 implements the v8 int32 codec: a single block-streamed
// little-endian int32 vector, NA already encoded by the caller as
// schema.NAInt32.
func WriteInt32(w io.Writer, iw IntWriter, compressLevel int, annotation string) error {
	data := iw.Data()
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(v))
	}
	strategy := compress.NewStrategy(compressLevel)
	if err := block.WriteBlocks(w, buf, len(data), 4, schema.BlockSizeInt32, strategy, annotation); err != nil {
		return fmt.Errorf("int32: write: %w", err)
	}
	return nil
}

// ReadInt32 reads rows [firstRow, firstRow+length) of a v8 int32 column
// starting at pos into ic, returning the column's annotation.
func ReadInt32(r io.ReaderAt, pos int64, ic IntColumn, firstRow, length int) (string, error) {
	buf := make([]byte, 4*length)
	ann, err := block.ReadBlocks(r, pos, buf, firstRow, length, 4)
	if err != nil {
		return "", fmt.Errorf("int32: read: %w", err)
	}
	dst := ic.Data()
	for i := 0; i < length; i++ {
		dst[i] = int32(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
	}
	return ann, nil
}
