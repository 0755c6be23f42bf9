package store

import (
	"fmt"
	"io"

	"github.com/17ai/fst/column"
	"github.com/17ai/fst/schema"
)

// Meta is the result of the read-meta validation prefix shared by
// ReadMeta and Read: table header, key-index header, chunkset header
// and column-names header, all hash-validated.
type Meta struct {
	Version   uint32
	KeyLength int
	KeyColPos []int32
	NrOfCols  int
	NrOfRows  int

	ColTypes          []schema.ColumnType
	ColBaseTypes      []schema.ColumnType
	ColAttributeTypes []schema.ColumnAttribute
	ColScales         []schema.Scale
	ColNames          []string

	chunksetOffset int64
	filter         *columnFilter
}

// ReadMeta parses and validates every header up to and including the
// column names, without touching chunk-index or column payloads.
func ReadMeta(r io.ReaderAt) (*Meta, error) {
	thBuf, err := readAt(r, 0, schema.TableHeaderSize)
	if err != nil {
		return nil, err
	}
	th, err := unmarshalTableHeader(thBuf)
	if err != nil {
		return nil, err
	}

	keyIndexSize := 8 + 4*int(th.keyLength)
	kihBuf, err := readAt(r, schema.TableHeaderSize, keyIndexSize)
	if err != nil {
		return nil, err
	}
	kih, err := unmarshalKeyIndexHeader(kihBuf, int(th.keyLength))
	if err != nil {
		return nil, err
	}

	chunksetOffset := int64(th.primaryChunkSetLoc)
	nrOfCols := int(th.nrOfCols)
	chunksetHeaderSize := schema.ChunksetHeaderBase + 8*nrOfCols
	cshBuf, err := readAt(r, chunksetOffset, chunksetHeaderSize)
	if err != nil {
		return nil, err
	}
	csh, err := unmarshalChunksetHeader(cshBuf, nrOfCols)
	if err != nil {
		return nil, err
	}

	colNamesHeaderOffset := chunksetOffset + int64(chunksetHeaderSize)
	cnhBuf, err := readAt(r, colNamesHeaderOffset, schema.ColNamesHeaderSize)
	if err != nil {
		return nil, err
	}
	if _, err := unmarshalColNamesHeader(cnhBuf); err != nil {
		return nil, err
	}

	colNamesPayloadOffset := colNamesHeaderOffset + schema.ColNamesHeaderSize
	names := &column.SimpleStringColumn{}
	if _, err := column.ReadCharacter(r, colNamesPayloadOffset, names, 0, nrOfCols, nrOfCols); err != nil {
		return nil, fmt.Errorf("store: read column names: %w", err)
	}

	colTypes := make([]schema.ColumnType, nrOfCols)
	colBaseTypes := make([]schema.ColumnType, nrOfCols)
	colAttributeTypes := make([]schema.ColumnAttribute, nrOfCols)
	colScales := make([]schema.Scale, nrOfCols)
	for i := 0; i < nrOfCols; i++ {
		colTypes[i] = schema.ColumnType(csh.colTypes[i])
		colBaseTypes[i] = schema.ColumnType(csh.colBaseTypes[i])
		colAttributeTypes[i] = schema.ColumnAttribute(csh.colAttributeTypes[i])
		colScales[i] = schema.Scale(csh.colScales[i])
	}

	return &Meta{
		Version:           th.version,
		KeyLength:         int(th.keyLength),
		KeyColPos:         kih.keyColPos,
		NrOfCols:          nrOfCols,
		NrOfRows:          int(csh.nrOfRows),
		ColTypes:          colTypes,
		ColBaseTypes:      colBaseTypes,
		ColAttributeTypes: colAttributeTypes,
		ColScales:         colScales,
		ColNames:          names.Values,
		chunksetOffset:    chunksetOffset,
		filter:            newColumnFilter(names.Values),
	}, nil
}

// findColumn resolves name to its on-disk column index via the exact
// linear scan spec.md §4.6 mandates; the Bloom filter only lets an
// absent name skip that scan, it never substitutes for it.
func (m *Meta) findColumn(name string) (int, bool) {
	if m.filter != nil && !m.filter.mightContain(name) {
		return -1, false
	}
	for i, n := range m.ColNames {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// Read implements spec.md §4.6's readTable: resolves the requested
// column selection and 1-based inclusive row range, then for each
// selected column dispatches to its codec and hands the filled
// container to reader. It returns the selected column names in
// selection order and the remapped key index (spec.md §4.7).
func Read(r io.ReaderAt, columnSelection []string, startRow, endRow int, factory ColumnFactory, reader TableReader) (outKeyIndex []int32, outSelectedCols []string, err error) {
	meta, err := ReadMeta(r)
	if err != nil {
		return nil, nil, err
	}

	chunksetHeaderSize := schema.ChunksetHeaderBase + 8*meta.NrOfCols
	colNamesHeaderOffset := meta.chunksetOffset + int64(chunksetHeaderSize)
	colNamesPayloadOffset := colNamesHeaderOffset + schema.ColNamesHeaderSize

	colNamesSize, err := column.CharacterStreamSize(r, colNamesPayloadOffset)
	if err != nil {
		return nil, nil, fmt.Errorf("store: locate chunk index: %w", err)
	}
	chunkIndexOffset := colNamesPayloadOffset + colNamesSize

	ciBuf, err := readAt(r, chunkIndexOffset, schema.ChunkIndexSize)
	if err != nil {
		return nil, nil, err
	}
	ci, err := unmarshalChunkIndex(ciBuf)
	if err != nil {
		return nil, nil, err
	}

	dataChunkHeaderOffset := chunkIndexOffset + schema.ChunkIndexSize
	dataChunkHeaderSize := schema.DataIndexHeaderBase + 8*meta.NrOfCols
	dchBuf, err := readAt(r, dataChunkHeaderOffset, dataChunkHeaderSize)
	if err != nil {
		return nil, nil, err
	}
	dch, err := unmarshalDataChunkHeader(dchBuf, meta.NrOfCols)
	if err != nil {
		return nil, nil, err
	}
	if ci.chunkRows[0] != uint64(meta.NrOfRows) {
		return nil, nil, schema.NewError(schema.DamagedChunkIndex, "chunk row count does not match chunkset header")
	}

	var colIndex []int32
	if columnSelection == nil {
		colIndex = make([]int32, meta.NrOfCols)
		for i := range colIndex {
			colIndex[i] = int32(i)
		}
	} else {
		colIndex = make([]int32, len(columnSelection))
		for i, name := range columnSelection {
			j, ok := meta.findColumn(name)
			if !ok {
				return nil, nil, schema.NewError(schema.ColumnNotFound, name)
			}
			colIndex[i] = int32(j)
		}
	}

	if startRow < 1 {
		return nil, nil, schema.ErrKind(schema.NegativeRow)
	}
	firstRow := startRow - 1
	if firstRow < 0 || firstRow >= meta.NrOfRows {
		return nil, nil, schema.ErrKind(schema.RowOutOfRange)
	}
	length := meta.NrOfRows - firstRow
	if endRow != -1 {
		if endRow <= firstRow {
			return nil, nil, schema.ErrKind(schema.BadRange)
		}
		if r := endRow - firstRow; r < length {
			length = r
		}
	}

	reader.InitTable(len(colIndex), length)

	for sel, colNr := range colIndex {
		idx := int(colNr)
		if idx < 0 || idx >= meta.NrOfCols {
			return nil, nil, schema.ErrKind(schema.ColumnOutOfRange)
		}
		pos := int64(dch.positionData[idx])
		if err := readColumn(r, pos, meta, idx, sel, firstRow, length, factory, reader); err != nil {
			return nil, nil, err
		}
	}

	outKeyIndex = remapKeys(meta.KeyColPos, colIndex)
	outSelectedCols = make([]string, len(colIndex))
	for i, colNr := range colIndex {
		outSelectedCols[i] = meta.ColNames[colNr]
	}
	return outKeyIndex, outSelectedCols, nil
}

func readColumn(r io.ReaderAt, pos int64, meta *Meta, colNr, colSel, firstRow, length int, factory ColumnFactory, reader TableReader) error {
	attr := meta.ColAttributeTypes[colNr]
	switch meta.ColTypes[colNr] {
	case schema.Character:
		sc := factory.CreateStringColumn(length, attr)
		ann, err := column.ReadCharacter(r, pos, sc, firstRow, length, length)
		if err != nil {
			return err
		}
		reader.SetStringColumn(colSel, sc, ann)
	case schema.Factor:
		fc := factory.CreateFactorColumn(length, attr)
		ann, err := column.ReadFactor(r, pos, fc, firstRow, length, length)
		if err != nil {
			return err
		}
		reader.SetFactorColumn(colSel, fc, ann)
	case schema.Int32:
		ic := factory.CreateIntColumn(length, attr)
		ann, err := column.ReadInt32(r, pos, ic, firstRow, length)
		if err != nil {
			return err
		}
		reader.SetIntColumn(colSel, ic, ann)
	case schema.Double64:
		dc := factory.CreateDoubleColumn(length, attr)
		ann, err := column.ReadDouble(r, pos, dc, firstRow, length)
		if err != nil {
			return err
		}
		reader.SetDoubleColumn(colSel, dc, ann)
	case schema.Bool2:
		lc := factory.CreateLogicalColumn(length, attr)
		ann, err := column.ReadLogical(r, pos, lc, firstRow, length)
		if err != nil {
			return err
		}
		reader.SetLogicalColumn(colSel, lc, ann)
	case schema.Int64:
		ic := factory.CreateInt64Column(length, attr)
		ann, err := column.ReadInt64(r, pos, ic, firstRow, length)
		if err != nil {
			return err
		}
		reader.SetInt64Column(colSel, ic, ann)
	case schema.Byte:
		bc := factory.CreateByteColumn(length, attr)
		ann, err := column.ReadByte(r, pos, bc, firstRow, length)
		if err != nil {
			return err
		}
		reader.SetByteColumn(colSel, bc, ann)
	default:
		return schema.NewError(schema.UnknownType, fmt.Sprintf("column %d has unknown type %d", colNr, meta.ColTypes[colNr]))
	}
	return nil
}
