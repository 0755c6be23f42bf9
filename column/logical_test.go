package column

import (
	"bytes"
	"testing"

	"github.com/17ai/fst/schema"
)

func TestLogicalRoundTripPackedBits(t *testing.T) {
	values := int32Slice{0, 1, schema.NAInt32, 1, 0, 0, 1, schema.NAInt32, 1}
	var buf bytes.Buffer
	if err := WriteLogical(&buf, values, 0, ""); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	out := make(int32Slice, len(values))
	if _, err := ReadLogical(r, 0, out, 0, len(values)); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i, v := range values {
		if out[i] != v {
			t.Fatalf("row %d: got %d, want %d", i, out[i], v)
		}
	}
}

func TestLogicalSubRangeCrossesByteBoundary(t *testing.T) {
	values := make(int32Slice, 40)
	for i := range values {
		values[i] = int32(i % 2)
	}
	var buf bytes.Buffer
	if err := WriteLogical(&buf, values, 0, ""); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	out := make(int32Slice, 12)
	if _, err := ReadLogical(r, 0, out, 5, 12); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i := range out {
		if out[i] != values[5+i] {
			t.Fatalf("row %d: got %d, want %d", i, out[i], values[5+i])
		}
	}
}

func TestLogicalEmptyRangeReadsAnnotation(t *testing.T) {
	values := int32Slice{0, 1, 0}
	var buf bytes.Buffer
	if err := WriteLogical(&buf, values, 0, "flag"); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	ann, err := ReadLogical(r, 0, make(int32Slice, 0), 0, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ann != "flag" {
		t.Fatalf("annotation = %q, want flag", ann)
	}
}
