package column

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/17ai/fst/block"
	"github.com/17ai/fst/compress"
	"github.com/17ai/fst/schema"
)

// plainLevels adapts a []string level slice (no NA, always UTF-8) to
// StringWriter so the level names can reuse the character codec.
type plainLevels []string

func (p plainLevels) Encoding() StringEncoding        { return schema.EncodingUTF8 }
func (p plainLevels) Length() int                     { return len(p) }
func (p plainLevels) GetElement(i int) (string, bool) { return p[i], true }

// WriteFactor implements the v7 factor codec: a block-streamed int32
// level-code vector (0 means NA, unlike Int32's INT_MIN convention)
// followed by a character sub-stream holding the sorted, deduplicated
// level names.
func WriteFactor(w io.Writer, sw StringWriter, compressLevel int, annotation string) error {
	codes, levels := BuildFactorLevels(sw)

	buf := make([]byte, 4*len(codes))
	for i, v := range codes {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(v))
	}

	codeStrategy := compress.NewStrategy(compressLevel)
	if err := block.WriteBlocks(w, buf, len(codes), 4, schema.BlockSizeInt32, codeStrategy, ""); err != nil {
		return fmt.Errorf("factor: write level codes: %w", err)
	}

	if err := WriteCharacter(w, plainLevels(levels), compressLevel, annotation); err != nil {
		return fmt.Errorf("factor: write levels: %w", err)
	}
	return nil
}

// ReadFactor reads rows [firstRow, firstRow+length) of a v7 factor
// column's level codes, plus the full level dictionary (every factor's
// levels are read in full regardless of row range, since the dictionary
// is independent of which rows are selected), into fc, returning the
// column's annotation.
func ReadFactor(r io.ReaderAt, pos int64, fc FactorColumn, firstRow, length, totalRows int) (string, error) {
	buf := make([]byte, 4*length)
	if _, err := block.ReadBlocks(r, pos, buf, firstRow, length, 4); err != nil {
		return "", fmt.Errorf("factor: read level codes: %w", err)
	}
	dst := fc.LevelData()
	for i := 0; i < length; i++ {
		dst[i] = int32(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
	}

	codeSize, err := block.HeaderSize(r, pos)
	if err != nil {
		return "", fmt.Errorf("factor: locate levels: %w", err)
	}
	levelsPos := pos + codeSize

	nrOfLevels, err := block.ElementCount(r, levelsPos+1)
	if err != nil {
		return "", fmt.Errorf("factor: count levels: %w", err)
	}

	ann, err := ReadCharacter(r, levelsPos, fc.Levels(), 0, nrOfLevels, nrOfLevels)
	if err != nil {
		return "", fmt.Errorf("factor: read levels: %w", err)
	}
	return ann, nil
}
