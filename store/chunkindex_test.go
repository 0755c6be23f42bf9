package store

import (
	"testing"

	"github.com/17ai/fst/schema"
)

func TestChunkIndexRoundTrip(t *testing.T) {
	c := chunkIndex{version: schema.FSTVersion}
	c.chunkPos[0] = 200
	c.chunkRows[0] = 10
	buf := c.marshal()
	if len(buf) != schema.ChunkIndexSize {
		t.Fatalf("got %d bytes, want %d", len(buf), schema.ChunkIndexSize)
	}
	got, err := unmarshalChunkIndex(buf)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.chunkPos[0] != 200 || got.chunkRows[0] != 10 {
		t.Fatalf("got %+v", got)
	}
}

func TestChunkIndexDetectsByteFlipAtEveryOffset(t *testing.T) {
	c := chunkIndex{version: schema.FSTVersion}
	c.chunkPos[0] = 200
	c.chunkRows[0] = 10
	base := c.marshal()
	for i := range base {
		buf := append([]byte(nil), base...)
		buf[i] ^= 0xFF
		if _, err := unmarshalChunkIndex(buf); err == nil {
			t.Fatalf("byte %d: expected error, got nil", i)
		}
	}
}

func TestChunkIndexRejectsPopulatedExtraSlot(t *testing.T) {
	c := chunkIndex{version: schema.FSTVersion}
	c.chunkPos[0] = 200
	c.chunkRows[0] = 10
	c.chunkPos[1] = 5 // a conformant writer never sets this
	buf := c.marshal()
	if _, err := unmarshalChunkIndex(buf); !errorsIsKind(err, schema.DamagedChunkIndex) {
		t.Fatalf("got %v, want DamagedChunkIndex", err)
	}
}

func TestDataChunkHeaderRejectsNonIncreasingOffsets(t *testing.T) {
	d := dataChunkHeader{version: schema.FSTVersion, positionData: []uint64{100, 100}}
	buf := d.marshal()
	if _, err := unmarshalDataChunkHeader(buf, 2); !errorsIsKind(err, schema.DamagedChunkIndex) {
		t.Fatalf("got %v, want DamagedChunkIndex", err)
	}
}

func TestDataChunkHeaderRoundTrip(t *testing.T) {
	d := dataChunkHeader{version: schema.FSTVersion, positionData: []uint64{100, 250, 9000}}
	buf := d.marshal()
	got, err := unmarshalDataChunkHeader(buf, 3)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i, v := range got.positionData {
		if v != d.positionData[i] {
			t.Fatalf("position %d: got %d, want %d", i, v, d.positionData[i])
		}
	}
}

func TestDataChunkHeaderDetectsByteFlipAtEveryOffset(t *testing.T) {
	d := dataChunkHeader{version: schema.FSTVersion, positionData: []uint64{100, 250, 9000}}
	base := d.marshal()
	for i := range base {
		buf := append([]byte(nil), base...)
		buf[i] ^= 0xFF
		if _, err := unmarshalDataChunkHeader(buf, 3); err == nil {
			t.Fatalf("byte %d: expected error, got nil", i)
		}
	}
}
