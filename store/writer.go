package store

import (
	"fmt"
	"io"

	"github.com/17ai/fst/column"
	"github.com/17ai/fst/schema"
)

// countingWriter tracks the absolute byte offset reached so far, letting
// Write record each column's starting position without a separate Seek
// round-trip for every column.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	m, err := c.w.Write(p)
	c.n += int64(m)
	return m, err
}

// Write lays out table per spec.md §4.5: metadata placeholder, column
// names, a chunk-index placeholder, then each column's payload in turn,
// recording its starting offset; finally it seeks back exactly twice to
// patch the chunk index and the metadata region with their final hashes
// and offsets now that the payload layout is known.
func Write(ws io.WriteSeeker, table Table, compressLevel int) error {
	nrOfCols := table.NrOfCols()
	nrOfRows := table.NrOfRows()
	keyLength := table.NrOfKeys()

	if nrOfCols == 0 {
		return schema.NewError(schema.EmptyTable, "table has no columns")
	}
	if nrOfRows == 0 {
		return schema.NewError(schema.NoData, "table has no rows")
	}

	colTypes := make([]uint16, nrOfCols)
	colBaseTypes := make([]uint16, nrOfCols)
	colAttributeTypes := make([]uint16, nrOfCols)
	colScales := make([]int16, nrOfCols)
	annotations := make([]string, nrOfCols)

	for i := 0; i < nrOfCols; i++ {
		t, attr, scale, ann := table.ColumnType(i)
		colTypes[i] = uint16(t)
		colBaseTypes[i] = uint16(t) // no separate host-language base type in this engine
		colAttributeTypes[i] = uint16(attr)
		colScales[i] = int16(scale)
		annotations[i] = ann
	}

	keyIndexHeaderSize := 8 + 4*keyLength
	chunksetHeaderSize := schema.ChunksetHeaderBase + 8*nrOfCols
	metaSize := schema.TableHeaderSize + keyIndexHeaderSize + chunksetHeaderSize + schema.ColNamesHeaderSize

	cw := &countingWriter{w: ws}
	if _, err := cw.Write(make([]byte, metaSize)); err != nil {
		return fmt.Errorf("store: write metadata placeholder: %w", err)
	}

	if err := column.WriteCharacter(cw, table.ColNameWriter(), 0, ""); err != nil {
		return fmt.Errorf("store: write column names: %w", err)
	}
	afterColNames := cw.n

	predataSize := schema.ChunkIndexSize + schema.DataIndexHeaderBase + 8*nrOfCols
	if _, err := cw.Write(make([]byte, predataSize)); err != nil {
		return fmt.Errorf("store: write chunk-index placeholder: %w", err)
	}

	positionData := make([]uint64, nrOfCols)
	for i := 0; i < nrOfCols; i++ {
		positionData[i] = uint64(cw.n)
		if err := writeColumn(cw, table, i, schema.ColumnType(colTypes[i]), compressLevel, annotations[i]); err != nil {
			return schema.WrapError(schema.WriteFailed, fmt.Sprintf("column %d", i), err)
		}
	}

	chunkPos := positionData[0] - uint64(8*nrOfCols) - uint64(schema.DataIndexHeaderBase)

	if _, err := ws.Seek(afterColNames, io.SeekStart); err != nil {
		return fmt.Errorf("store: seek to chunk index: %w", err)
	}
	ci := chunkIndex{version: schema.FSTVersion}
	ci.chunkPos[0] = chunkPos
	ci.chunkRows[0] = uint64(nrOfRows)
	if _, err := ws.Write(ci.marshal()); err != nil {
		return fmt.Errorf("store: write chunk index: %w", err)
	}
	dch := dataChunkHeader{version: schema.FSTVersion, positionData: positionData}
	if _, err := ws.Write(dch.marshal()); err != nil {
		return fmt.Errorf("store: write data chunk header: %w", err)
	}

	th := tableHeader{
		version:            schema.FSTVersion,
		versionMax:         schema.FSTVersion,
		nrOfCols:           uint32(nrOfCols),
		primaryChunkSetLoc: uint64(52 + 4*keyLength),
		keyLength:          uint32(keyLength),
	}
	kih := keyIndexHeader{keyColPos: table.KeyColumns()}
	csh := chunksetHeader{
		version:           schema.FSTVersion,
		nrOfRows:          uint64(nrOfRows),
		nrOfCols:          uint32(nrOfCols),
		colAttributeTypes: colAttributeTypes,
		colTypes:          colTypes,
		colBaseTypes:      colBaseTypes,
		colScales:         colScales,
	}
	cnh := colNamesHeader{version: schema.FSTVersion}

	metaBuf := make([]byte, 0, metaSize)
	metaBuf = append(metaBuf, th.marshal()...)
	metaBuf = append(metaBuf, kih.marshal()...)
	metaBuf = append(metaBuf, csh.marshal()...)
	metaBuf = append(metaBuf, cnh.marshal()...)

	if _, err := ws.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("store: seek to metadata: %w", err)
	}
	if _, err := ws.Write(metaBuf); err != nil {
		return fmt.Errorf("store: write metadata: %w", err)
	}
	return nil
}

func writeColumn(w io.Writer, table Table, colNr int, t schema.ColumnType, compressLevel int, annotation string) error {
	switch t {
	case schema.Character:
		return column.WriteCharacter(w, table.StringWriter(colNr), compressLevel, annotation)
	case schema.Factor:
		return column.WriteFactor(w, table.LevelWriter(colNr), compressLevel, annotation)
	case schema.Int32:
		return column.WriteInt32(w, table.IntWriter(colNr), compressLevel, annotation)
	case schema.Double64:
		return column.WriteDouble(w, table.DoubleWriter(colNr), compressLevel, annotation)
	case schema.Bool2:
		return column.WriteLogical(w, table.LogicalWriter(colNr), compressLevel, annotation)
	case schema.Int64:
		return column.WriteInt64(w, table.Int64Writer(colNr), compressLevel, annotation)
	case schema.Byte:
		return column.WriteByte(w, table.ByteWriter(colNr), compressLevel, annotation)
	default:
		return schema.NewError(schema.UnknownType, fmt.Sprintf("column %d has unknown type %d", colNr, t))
	}
}
