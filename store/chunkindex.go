package store

import (
	"encoding/binary"
	"fmt"

	"github.com/17ai/fst/hash"
	"github.com/17ai/fst/schema"
)

// chunkIndex is the fixed 96-byte record of nrOfChunkSlots (chunkPos,
// chunkRows) pairs. A conformant writer fills only slot 0.
type chunkIndex struct {
	version   uint32
	chunkPos  [schema.NrOfChunkSlots]uint64
	chunkRows [schema.NrOfChunkSlots]uint64
}

func (c chunkIndex) marshal() []byte {
	buf := make([]byte, schema.ChunkIndexSize)
	binary.LittleEndian.PutUint32(buf[8:12], c.version)
	binary.LittleEndian.PutUint32(buf[12:16], 0) // flags
	binary.LittleEndian.PutUint64(buf[16:24], 0) // reserved
	binary.LittleEndian.PutUint16(buf[24:26], uint16(schema.NrOfChunkSlots))
	// buf[26:32] reserved
	for i := 0; i < schema.NrOfChunkSlots; i++ {
		binary.LittleEndian.PutUint64(buf[32+8*i:40+8*i], c.chunkPos[i])
	}
	for i := 0; i < schema.NrOfChunkSlots; i++ {
		binary.LittleEndian.PutUint64(buf[64+8*i:72+8*i], c.chunkRows[i])
	}
	binary.LittleEndian.PutUint64(buf[0:8], hash.Sum64(buf[8:]))
	return buf
}

func unmarshalChunkIndex(buf []byte) (chunkIndex, error) {
	if len(buf) != schema.ChunkIndexSize {
		return chunkIndex{}, fmt.Errorf("store: chunk index has %d bytes, want %d", len(buf), schema.ChunkIndexSize)
	}
	wantHash := binary.LittleEndian.Uint64(buf[0:8])
	if hash.Sum64(buf[8:]) != wantHash {
		return chunkIndex{}, schema.ErrKind(schema.DamagedChunkIndex)
	}

	c := chunkIndex{version: binary.LittleEndian.Uint32(buf[8:12])}
	nrOfSlots := binary.LittleEndian.Uint16(buf[24:26])
	if int(nrOfSlots) != schema.NrOfChunkSlots {
		return chunkIndex{}, fmt.Errorf("store: chunk index declares %d slots, want %d", nrOfSlots, schema.NrOfChunkSlots)
	}
	for i := 0; i < schema.NrOfChunkSlots; i++ {
		c.chunkPos[i] = binary.LittleEndian.Uint64(buf[32+8*i : 40+8*i])
	}
	for i := 0; i < schema.NrOfChunkSlots; i++ {
		c.chunkRows[i] = binary.LittleEndian.Uint64(buf[64+8*i : 72+8*i])
	}

	// Open Question #3: a conformant writer populates only slot 0; a
	// populated slot 1-3 is rejected rather than tolerated, since it is
	// more likely a corrupt or foreign file than an intentionally
	// extended one this engine doesn't support.
	for i := 1; i < schema.NrOfChunkSlots; i++ {
		if c.chunkPos[i] != 0 || c.chunkRows[i] != 0 {
			return chunkIndex{}, schema.NewError(schema.DamagedChunkIndex, "unsupported chunk slot populated")
		}
	}
	return c, nil
}

// dataChunkHeader is the (24 + 8*nrOfCols)-byte record of absolute file
// offsets at which each column's block-streamer payload begins.
type dataChunkHeader struct {
	version      uint32
	positionData []uint64
}

func (d dataChunkHeader) marshal() []byte {
	n := len(d.positionData)
	buf := make([]byte, schema.DataIndexHeaderBase+8*n)
	binary.LittleEndian.PutUint32(buf[8:12], d.version)
	binary.LittleEndian.PutUint32(buf[12:16], 0) // flags
	binary.LittleEndian.PutUint64(buf[16:24], 0) // reserved
	for i, pos := range d.positionData {
		binary.LittleEndian.PutUint64(buf[24+8*i:32+8*i], pos)
	}
	binary.LittleEndian.PutUint64(buf[0:8], hash.Sum64(buf[8:]))
	return buf
}

func unmarshalDataChunkHeader(buf []byte, nrOfCols int) (dataChunkHeader, error) {
	want := schema.DataIndexHeaderBase + 8*nrOfCols
	if len(buf) != want {
		return dataChunkHeader{}, fmt.Errorf("store: data chunk header has %d bytes, want %d", len(buf), want)
	}
	wantHash := binary.LittleEndian.Uint64(buf[0:8])
	if hash.Sum64(buf[8:]) != wantHash {
		return dataChunkHeader{}, schema.ErrKind(schema.DamagedChunkIndex)
	}

	d := dataChunkHeader{
		version:      binary.LittleEndian.Uint32(buf[8:12]),
		positionData: make([]uint64, nrOfCols),
	}
	for i := 0; i < nrOfCols; i++ {
		d.positionData[i] = binary.LittleEndian.Uint64(buf[24+8*i : 32+8*i])
	}
	for i := 1; i < nrOfCols; i++ {
		if d.positionData[i] <= d.positionData[i-1] {
			return dataChunkHeader{}, schema.NewError(schema.DamagedChunkIndex, "column offsets not strictly increasing")
		}
	}
	return d, nil
}
