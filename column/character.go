package column

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/17ai/fst/block"
	"github.com/17ai/fst/compress"
	"github.com/17ai/fst/schema"
)

// naBit flags a size-meta entry as "no bytes, value is NA" rather than
// "zero-length but present" (an empty string). The remaining 31 bits hold
// the cumulative end-of-element byte offset into the packed data blob.
const naBit uint32 = 0x80000000

// WriteCharacter implements the v6 character codec: a cumulative
// size-meta table (one u32 end-offset per element, NA flagged via naBit)
// followed by the packed UTF-8 payload, each block-streamed
// independently so a row-range read only has to decompress the blocks it
// actually needs.
func WriteCharacter(w io.Writer, sw StringWriter, compressLevel int, annotation string) error {
	n := sw.Length()

	sizeMeta := make([]byte, 4*n)
	data := make([]byte, 0, n*8)
	var cum uint32

	for i := 0; i < n; i++ {
		s, ok := sw.GetElement(i)
		entry := cum
		if ok {
			data = append(data, s...)
			cum += uint32(len(s))
			entry = cum
		} else {
			entry = cum | naBit
		}
		binary.LittleEndian.PutUint32(sizeMeta[i*4:i*4+4], entry)
	}

	if _, err := w.Write([]byte{byte(sw.Encoding())}); err != nil {
		return fmt.Errorf("character: write encoding tag: %w", err)
	}

	metaStrategy := compress.NewStrategy(compressLevel)
	if err := block.WriteBlocks(w, sizeMeta, n, 4, schema.BlockSizeCharMeta, metaStrategy, ""); err != nil {
		return fmt.Errorf("character: write size-meta: %w", err)
	}

	dataStrategy := compress.NewStrategy(compressLevel)
	if err := block.WriteBlocks(w, data, len(data), 1, schema.BlockSizeCharData, dataStrategy, annotation); err != nil {
		return fmt.Errorf("character: write data: %w", err)
	}

	return nil
}

// CharacterStreamSize returns the total number of bytes a v6 character
// column occupies on disk starting at pos (encoding tag, size-meta
// stream, and data stream), letting a caller locate whatever follows it
// without decompressing any block.
func CharacterStreamSize(r io.ReaderAt, pos int64) (int64, error) {
	metaPos := pos + 1
	metaSize, err := block.HeaderSize(r, metaPos)
	if err != nil {
		return 0, fmt.Errorf("character: read size-meta header: %w", err)
	}
	dataPos := metaPos + metaSize
	dataSize, err := block.HeaderSize(r, dataPos)
	if err != nil {
		return 0, fmt.Errorf("character: read data header: %w", err)
	}
	return 1 + metaSize + dataSize, nil
}

// ReadCharacter reads rows [firstRow, firstRow+length) of a v6 character
// column starting at pos, filling sc via BufferToVec, and returns the
// column's annotation.
func ReadCharacter(r io.ReaderAt, pos int64, sc StringColumn, firstRow, length, totalRows int) (string, error) {
	var encTag [1]byte
	if _, err := r.ReadAt(encTag[:], pos); err != nil {
		return "", fmt.Errorf("character: read encoding tag: %w", err)
	}
	sc.SetEncoding(schema.StringEncoding(encTag[0]))

	metaPos := pos + 1
	metaSize, err := block.HeaderSize(r, metaPos)
	if err != nil {
		return "", fmt.Errorf("character: read size-meta header: %w", err)
	}

	lo := firstRow
	withPrev := 0
	if firstRow > 0 {
		lo = firstRow - 1
		withPrev = 1
	}
	fetchLen := length + withPrev

	rawMeta := make([]byte, fetchLen*4)
	if fetchLen > 0 {
		if _, err := block.ReadBlocks(r, metaPos, rawMeta, lo, fetchLen, 4); err != nil {
			return "", fmt.Errorf("character: read size-meta range: %w", err)
		}
	}

	entries := make([]uint32, fetchLen)
	for i := 0; i < fetchLen; i++ {
		entries[i] = binary.LittleEndian.Uint32(rawMeta[i*4 : i*4+4])
	}

	var baseline uint32
	rowEntries := entries
	if withPrev == 1 {
		baseline = entries[0] &^ naBit
		rowEntries = entries[1:]
	}

	var byteLen uint32
	if length > 0 {
		last := rowEntries[length-1]
		byteLen = (last &^ naBit) - baseline
	}

	dataPos := pos + 1 + metaSize
	buf := make([]byte, byteLen)
	if byteLen > 0 {
		if _, err := block.ReadBlocks(r, dataPos, buf, int(baseline), int(byteLen), 1); err != nil {
			return "", fmt.Errorf("character: read data range: %w", err)
		}
	}

	relativeMeta := make([]uint32, length)
	for i := 0; i < length; i++ {
		if rowEntries[i]&naBit != 0 {
			relativeMeta[i] = (rowEntries[i] &^ naBit) - baseline | naBit
		} else {
			relativeMeta[i] = rowEntries[i] - baseline
		}
	}

	sc.AllocateVec(totalRows)
	sc.BufferToVec(firstRow, firstRow+length, 0, relativeMeta, buf)

	_, ann, err := block.ReadAnnotation(r, dataPos)
	if err != nil {
		return "", fmt.Errorf("character: read annotation: %w", err)
	}
	return ann, nil
}
