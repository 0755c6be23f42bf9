// Package store assembles the table, chunkset, column-names, chunk-index
// and data-chunk records that make up the on-disk format, orchestrates
// the typed column codecs, and resolves column/row selection on read.
// It defines the capability interfaces (Table, TableReader, ColumnFactory)
// a host must implement to hand data to and receive data from the engine.
package store

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/17ai/fst/hash"
	"github.com/17ai/fst/schema"
)

// tableHeader is the fixed 44-byte record at offset 0 of every file.
type tableHeader struct {
	version            uint32
	versionMax         uint32
	nrOfCols           uint32
	primaryChunkSetLoc uint64
	keyLength          uint32
}

func (h tableHeader) marshal() []byte {
	buf := make([]byte, schema.TableHeaderSize)
	binary.LittleEndian.PutUint32(buf[8:12], h.version)
	binary.LittleEndian.PutUint32(buf[12:16], 0) // tableFlags
	binary.LittleEndian.PutUint64(buf[16:24], 0) // reserved
	binary.LittleEndian.PutUint32(buf[24:28], h.versionMax)
	binary.LittleEndian.PutUint32(buf[28:32], h.nrOfCols)
	binary.LittleEndian.PutUint64(buf[32:40], h.primaryChunkSetLoc)
	binary.LittleEndian.PutUint32(buf[40:44], h.keyLength)
	binary.LittleEndian.PutUint64(buf[0:8], hash.Sum64(buf[8:]))
	return buf
}

func unmarshalTableHeader(buf []byte) (tableHeader, error) {
	if len(buf) != schema.TableHeaderSize {
		return tableHeader{}, fmt.Errorf("store: table header has %d bytes, want %d", len(buf), schema.TableHeaderSize)
	}
	wantHash := binary.LittleEndian.Uint64(buf[0:8])
	if hash.Sum64(buf[8:]) != wantHash {
		return tableHeader{}, schema.NewError(schema.NonFstFile, "table header hash mismatch")
	}
	h := tableHeader{
		version:            binary.LittleEndian.Uint32(buf[8:12]),
		versionMax:         binary.LittleEndian.Uint32(buf[24:28]),
		nrOfCols:           binary.LittleEndian.Uint32(buf[28:32]),
		primaryChunkSetLoc: binary.LittleEndian.Uint64(buf[32:40]),
		keyLength:          binary.LittleEndian.Uint32(buf[40:44]),
	}
	if h.versionMax > schema.FSTVersion {
		return tableHeader{}, schema.NewError(schema.UpdateRequired, fmt.Sprintf("file requires reader version %d, have %d", h.versionMax, schema.FSTVersion))
	}
	return h, nil
}

// keyIndexHeader is the (8 + 4*keyLength)-byte record following the table
// header. It is always present: with keyLength == 0 it is the 8-byte hash
// alone, so primaryChunkSetLoc = 52 + 4*keyLength holds for every table.
type keyIndexHeader struct {
	keyColPos []int32
}

func (h keyIndexHeader) marshal() []byte {
	n := len(h.keyColPos)
	buf := make([]byte, 8+4*n)
	for i, pos := range h.keyColPos {
		binary.LittleEndian.PutUint32(buf[8+4*i:12+4*i], uint32(pos))
	}
	binary.LittleEndian.PutUint64(buf[0:8], hash.Sum64(buf[8:]))
	return buf
}

func unmarshalKeyIndexHeader(buf []byte, keyLength int) (keyIndexHeader, error) {
	want := 8 + 4*keyLength
	if len(buf) != want {
		return keyIndexHeader{}, fmt.Errorf("store: key-index header has %d bytes, want %d", len(buf), want)
	}
	wantHash := binary.LittleEndian.Uint64(buf[0:8])
	if hash.Sum64(buf[8:]) != wantHash {
		return keyIndexHeader{}, schema.ErrKind(schema.DamagedHeader)
	}
	keyColPos := make([]int32, keyLength)
	for i := range keyColPos {
		keyColPos[i] = int32(binary.LittleEndian.Uint32(buf[8+4*i : 12+4*i]))
	}
	return keyIndexHeader{keyColPos: keyColPos}, nil
}

// chunksetHeader is the (76 + 8*nrOfCols)-byte record describing the
// single chunkset a conformant writer emits.
type chunksetHeader struct {
	version           uint32
	nrOfRows          uint64
	nrOfCols          uint32
	colAttributeTypes []uint16
	colTypes          []uint16
	colBaseTypes      []uint16
	colScales         []int16
}

func (h chunksetHeader) marshal() []byte {
	n := int(h.nrOfCols)
	buf := make([]byte, schema.ChunksetHeaderBase+8*n)
	binary.LittleEndian.PutUint32(buf[8:12], h.version)
	binary.LittleEndian.PutUint32(buf[12:16], 0) // chunksetFlags
	// buf[16:32] reserved
	binary.LittleEndian.PutUint64(buf[32:40], 0) // colNamesPos
	binary.LittleEndian.PutUint64(buf[40:48], 0) // nextHorzChunkSet
	binary.LittleEndian.PutUint64(buf[48:56], 0) // primChunksetIndex
	binary.LittleEndian.PutUint64(buf[56:64], 0) // secChunksetIndex
	binary.LittleEndian.PutUint64(buf[64:72], h.nrOfRows)
	binary.LittleEndian.PutUint32(buf[72:76], h.nrOfCols)

	off := schema.ChunksetHeaderBase
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[off+2*i:off+2*i+2], h.colAttributeTypes[i])
	}
	off += 2 * n
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[off+2*i:off+2*i+2], h.colTypes[i])
	}
	off += 2 * n
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[off+2*i:off+2*i+2], h.colBaseTypes[i])
	}
	off += 2 * n
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[off+2*i:off+2*i+2], uint16(h.colScales[i]))
	}

	binary.LittleEndian.PutUint64(buf[0:8], hash.Sum64(buf[8:]))
	return buf
}

func unmarshalChunksetHeader(buf []byte, nrOfCols int) (chunksetHeader, error) {
	want := schema.ChunksetHeaderBase + 8*nrOfCols
	if len(buf) != want {
		return chunksetHeader{}, fmt.Errorf("store: chunkset header has %d bytes, want %d", len(buf), want)
	}
	wantHash := binary.LittleEndian.Uint64(buf[0:8])
	if hash.Sum64(buf[8:]) != wantHash {
		return chunksetHeader{}, schema.ErrKind(schema.DamagedHeader)
	}

	h := chunksetHeader{
		version:  binary.LittleEndian.Uint32(buf[8:12]),
		nrOfRows: binary.LittleEndian.Uint64(buf[64:72]),
		nrOfCols: binary.LittleEndian.Uint32(buf[72:76]),
	}
	n := int(h.nrOfCols)
	if n != nrOfCols {
		return chunksetHeader{}, fmt.Errorf("store: chunkset declares %d cols, table header said %d", n, nrOfCols)
	}

	off := schema.ChunksetHeaderBase
	h.colAttributeTypes = make([]uint16, n)
	for i := 0; i < n; i++ {
		h.colAttributeTypes[i] = binary.LittleEndian.Uint16(buf[off+2*i : off+2*i+2])
	}
	off += 2 * n
	h.colTypes = make([]uint16, n)
	for i := 0; i < n; i++ {
		h.colTypes[i] = binary.LittleEndian.Uint16(buf[off+2*i : off+2*i+2])
	}
	off += 2 * n
	h.colBaseTypes = make([]uint16, n)
	for i := 0; i < n; i++ {
		h.colBaseTypes[i] = binary.LittleEndian.Uint16(buf[off+2*i : off+2*i+2])
	}
	off += 2 * n
	h.colScales = make([]int16, n)
	for i := 0; i < n; i++ {
		h.colScales[i] = int16(binary.LittleEndian.Uint16(buf[off+2*i : off+2*i+2]))
	}

	return h, nil
}

// colNamesHeader is the fixed 24-byte record immediately preceding the
// column-names character-codec payload.
type colNamesHeader struct {
	version uint32
}

func (h colNamesHeader) marshal() []byte {
	buf := make([]byte, schema.ColNamesHeaderSize)
	binary.LittleEndian.PutUint32(buf[8:12], h.version)
	binary.LittleEndian.PutUint64(buf[0:8], hash.Sum64(buf[8:]))
	return buf
}

func unmarshalColNamesHeader(buf []byte) (colNamesHeader, error) {
	if len(buf) != schema.ColNamesHeaderSize {
		return colNamesHeader{}, fmt.Errorf("store: colnames header has %d bytes, want %d", len(buf), schema.ColNamesHeaderSize)
	}
	wantHash := binary.LittleEndian.Uint64(buf[0:8])
	if hash.Sum64(buf[8:]) != wantHash {
		return colNamesHeader{}, schema.ErrKind(schema.DamagedHeader)
	}
	return colNamesHeader{version: binary.LittleEndian.Uint32(buf[8:12])}, nil
}

// readAt is a small helper shared by header/chunk-index parsing: read
// exactly len(buf) bytes at pos from r.
func readAt(r io.ReaderAt, pos int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := r.ReadAt(buf, pos); err != nil {
		return nil, fmt.Errorf("store: read at %d: %w", pos, err)
	}
	return buf, nil
}
