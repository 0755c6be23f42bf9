package column

import (
	"bytes"
	"testing"

	"github.com/17ai/fst/schema"
)

type int64Slice []int64

func (s int64Slice) Data() []int64 { return s }

func TestInt64RoundTrip(t *testing.T) {
	values := int64Slice{1, -1, 0, schema.NAInt64, 1 << 40}
	var buf bytes.Buffer
	if err := WriteInt64(&buf, values, 75, "tz=UTC"); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	out := make(int64Slice, len(values))
	ann, err := ReadInt64(r, 0, out, 0, len(values))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ann != "tz=UTC" {
		t.Fatalf("annotation = %q, want tz=UTC", ann)
	}
	for i, v := range values {
		if out[i] != v {
			t.Fatalf("row %d: got %d, want %d", i, out[i], v)
		}
	}
}
