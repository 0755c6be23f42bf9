package column

import (
	"bytes"
	"testing"

	"github.com/17ai/fst/schema"
)

func TestCharacterRoundTripWithNAAndEmpty(t *testing.T) {
	values := []string{"hello", "", "world", ""}
	present := []bool{true, true, false, true}
	w := SimpleStringWriter{Values: values, Present: present, Enc: schema.EncodingUTF8}

	var buf bytes.Buffer
	if err := WriteCharacter(&buf, w, 0, "lang=en"); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	sc := &SimpleStringColumn{}
	ann, err := ReadCharacter(r, 0, sc, 0, len(values), len(values))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ann != "lang=en" {
		t.Fatalf("annotation = %q, want lang=en", ann)
	}
	if sc.Encoding != schema.EncodingUTF8 {
		t.Fatalf("encoding = %v, want UTF8", sc.Encoding)
	}
	for i := range values {
		if sc.Present[i] != present[i] {
			t.Fatalf("row %d: present = %v, want %v", i, sc.Present[i], present[i])
		}
		if present[i] && sc.Values[i] != values[i] {
			t.Fatalf("row %d: value = %q, want %q", i, sc.Values[i], values[i])
		}
	}
}

func TestCharacterSubRangeSkipsUnreferencedBytes(t *testing.T) {
	values := make([]string, 100)
	for i := range values {
		values[i] = string(rune('a'+i%26)) + string(rune('0'+i%10))
	}
	w := SimpleStringWriter{Values: values, Enc: schema.EncodingNative}

	var buf bytes.Buffer
	if err := WriteCharacter(&buf, w, 50, ""); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	sc := &SimpleStringColumn{}
	if _, err := ReadCharacter(r, 0, sc, 30, 10, 10); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i := 0; i < 10; i++ {
		if sc.Values[i] != values[30+i] {
			t.Fatalf("row %d: got %q, want %q", i, sc.Values[i], values[30+i])
		}
	}
}

func TestCharacterStreamSizeMatchesWrittenBytes(t *testing.T) {
	w := SimpleStringWriter{Values: []string{"a", "bb", "ccc"}, Enc: schema.EncodingUTF8}
	var buf bytes.Buffer
	if err := WriteCharacter(&buf, w, 0, ""); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bytes.NewReader(buf.Bytes())
	size, err := CharacterStreamSize(r, 0)
	if err != nil {
		t.Fatalf("stream size: %v", err)
	}
	if size != int64(buf.Len()) {
		t.Fatalf("got %d, want %d (everything written belongs to this one stream)", size, buf.Len())
	}
}
