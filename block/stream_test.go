package block

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/17ai/fst/compress"
)

func makeInt32Buf(values []int32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(v))
	}
	return buf
}

func int32sFromBuf(buf []byte) []int32 {
	out := make([]int32, len(buf)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
	}
	return out
}

func TestWriteReadBlocksRoundTripUncompressed(t *testing.T) {
	values := make([]int32, 10000)
	for i := range values {
		values[i] = int32(i * 3)
	}
	buf := makeInt32Buf(values)

	var out bytes.Buffer
	if err := WriteBlocks(&out, buf, len(values), 4, 1024, compress.UncompressedStrategy{}, "tz=UTC"); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(out.Bytes())
	dst := make([]byte, len(buf))
	ann, err := ReadBlocks(r, 0, dst, 0, len(values), 4)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ann != "tz=UTC" {
		t.Fatalf("annotation = %q, want tz=UTC", ann)
	}
	if !bytes.Equal(dst, buf) {
		t.Fatalf("round trip mismatch")
	}
}

func TestReadBlocksSubRangeSpansPartialBlocks(t *testing.T) {
	values := make([]int32, 5000)
	for i := range values {
		values[i] = int32(i)
	}
	buf := makeInt32Buf(values)

	var out bytes.Buffer
	strategy := compress.NewLinearCompressor(30)
	if err := WriteBlocks(&out, buf, len(values), 4, 512, strategy, ""); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(out.Bytes())
	start, length := 1000, 137
	dst := make([]byte, length*4)
	if _, err := ReadBlocks(r, 0, dst, start, length, 4); err != nil {
		t.Fatalf("read: %v", err)
	}

	got := int32sFromBuf(dst)
	want := values[start : start+length]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %d, want %d", start+i, got[i], want[i])
		}
	}
}

func TestReadBlocksCompositeStrategyRoundTrip(t *testing.T) {
	values := make([]int32, 20000)
	for i := range values {
		values[i] = int32(-i)
	}
	buf := makeInt32Buf(values)

	var out bytes.Buffer
	strategy := compress.NewCompositeCompressor(80)
	if err := WriteBlocks(&out, buf, len(values), 4, 2048, strategy, "ann"); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(out.Bytes())
	dst := make([]byte, len(buf))
	if _, err := ReadBlocks(r, 0, dst, 0, len(values), 4); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(dst, buf) {
		t.Fatalf("composite round trip mismatch")
	}
}

func TestReadBlocksEmptyRange(t *testing.T) {
	values := []int32{1, 2, 3}
	buf := makeInt32Buf(values)

	var out bytes.Buffer
	if err := WriteBlocks(&out, buf, len(values), 4, 2, compress.UncompressedStrategy{}, ""); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(out.Bytes())
	dst := make([]byte, 0)
	if _, err := ReadBlocks(r, 0, dst, 1, 0, 4); err != nil {
		t.Fatalf("read: %v", err)
	}
}

func TestReadBlocksOutOfRange(t *testing.T) {
	values := []int32{1, 2, 3}
	buf := makeInt32Buf(values)

	var out bytes.Buffer
	if err := WriteBlocks(&out, buf, len(values), 4, 2, compress.UncompressedStrategy{}, ""); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(out.Bytes())
	dst := make([]byte, 4*4)
	if _, err := ReadBlocks(r, 0, dst, 0, 4, 4); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}
