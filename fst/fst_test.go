package fst

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/17ai/fst/schema"
)

func corruptByte(t *testing.T, path string, offset int64) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var b [1]byte
	if _, err := f.ReadAt(b[:], offset); err != nil {
		t.Fatal(err)
	}
	b[0] ^= 0xFF
	if _, err := f.WriteAt(b[:], offset); err != nil {
		t.Fatal(err)
	}
}

func sampleTable() *Table {
	return &Table{
		Rows: 4,
		Columns: []*ColumnData{
			{
				Name: "a", Type: schema.Int32,
				Int32s: []int32{1, 2, 3, schema.NAInt32},
			},
			{
				Name: "b", Type: schema.Double64,
				Doubles: []float64{1.5, math.NaN(), math.Copysign(0, -1), math.Inf(1)},
			},
			{
				Name: "c", Type: schema.Character,
				Encoding: schema.EncodingUTF8,
				Strings:  []string{"x", "yy", "", " z"},
			},
		},
	}
}

func TestRoundTripAllCompressLevels(t *testing.T) {
	for _, compress := range []int{0, 25, 50, 75, 100} {
		path := filepath.Join(t.TempDir(), "t.fst")
		table := sampleTable()
		if err := WriteFile(path, table, compress); err != nil {
			t.Fatalf("compress=%d: write: %v", compress, err)
		}
		res, _, _, err := ReadFile(path, nil, 1, -1)
		if err != nil {
			t.Fatalf("compress=%d: read: %v", compress, err)
		}
		if res.Rows != 4 {
			t.Fatalf("compress=%d: got %d rows, want 4", compress, res.Rows)
		}

		got := res.Columns[0].Int32s
		want := table.Columns[0].Int32s
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("compress=%d: int32[%d] = %d, want %d", compress, i, got[i], want[i])
			}
		}

		gotD := res.Columns[1].Doubles
		wantD := table.Columns[1].Doubles
		for i := range wantD {
			gb := math.Float64bits(gotD[i])
			wb := math.Float64bits(wantD[i])
			if gb != wb {
				t.Fatalf("compress=%d: double[%d] bits = %x, want %x", compress, i, gb, wb)
			}
		}

		gotS := res.Columns[2].Strings
		wantS := table.Columns[2].Strings
		for i := range wantS {
			if gotS[i] != wantS[i] {
				t.Fatalf("compress=%d: string[%d] = %q, want %q", compress, i, gotS[i], wantS[i])
			}
		}
		if res.Columns[2].Encoding != schema.EncodingUTF8 {
			t.Fatalf("compress=%d: encoding = %v, want UTF8", compress, res.Columns[2].Encoding)
		}
	}
}

func TestCompressZeroAndHundredByteIdentical(t *testing.T) {
	dir := t.TempDir()
	table := sampleTable()
	p0 := filepath.Join(dir, "zero.fst")
	p100 := filepath.Join(dir, "hundred.fst")
	if err := WriteFile(p0, table, 0); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(p100, table, 100); err != nil {
		t.Fatal(err)
	}

	r0, _, _, err := ReadFile(p0, nil, 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	r100, _, _, err := ReadFile(p100, nil, 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range r0.Columns[0].Int32s {
		if r0.Columns[0].Int32s[i] != r100.Columns[0].Int32s[i] {
			t.Fatalf("int32[%d] differs between compress=0 and compress=100", i)
		}
	}
	for i := range r0.Columns[1].Doubles {
		if math.Float64bits(r0.Columns[1].Doubles[i]) != math.Float64bits(r100.Columns[1].Doubles[i]) {
			t.Fatalf("double[%d] differs between compress=0 and compress=100", i)
		}
	}
	for i := range r0.Columns[2].Strings {
		if r0.Columns[2].Strings[i] != r100.Columns[2].Strings[i] {
			t.Fatalf("string[%d] differs between compress=0 and compress=100", i)
		}
	}
}

func TestCorruptedTableHeaderByteIsDetected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.fst")
	if err := WriteFile(path, sampleTable(), 0); err != nil {
		t.Fatal(err)
	}
	corruptByte(t, path, 10)
	if _, err := ReadMetaFile(path); err == nil {
		t.Fatal("expected error reading corrupted header, got nil")
	}
}

func TestSlicingReturnsExactRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.fst")
	table := &Table{Rows: 200000, Columns: []*ColumnData{
		{Name: "grade", Type: schema.Factor, Strings: buildCycle([]string{"lo", "mid", "hi"}, 200000)},
	}}
	if err := WriteFile(path, table, 75); err != nil {
		t.Fatal(err)
	}

	res, _, _, err := ReadFile(path, nil, 50001, 50100)
	if err != nil {
		t.Fatal(err)
	}
	if res.Rows != 100 {
		t.Fatalf("got %d rows, want 100", res.Rows)
	}
	codes := res.Columns[0].Int32s
	wantStrings := table.Columns[0].Strings[50000:50100]
	levels := res.Columns[0].Strings
	for i, code := range codes {
		if levels[code-1] != wantStrings[i] {
			t.Fatalf("row %d: level %q, want %q", i, levels[code-1], wantStrings[i])
		}
	}
}

func TestRowRangeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.fst")
	if err := WriteFile(path, sampleTable(), 0); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := ReadFile(path, nil, 0, -1); !isKind(err, schema.NegativeRow) {
		t.Fatalf("startRow=0: got %v, want NegativeRow", err)
	}
	// startRow == endRow is a valid single-row range (spec.md §8's
	// slicing-idempotence property permits a == b), not BadRange.
	res, _, _, err := ReadFile(path, nil, 1, 1)
	if err != nil {
		t.Fatalf("startRow=1,endRow=1: got %v, want a valid 1-row read", err)
	}
	if res.Rows != 1 {
		t.Fatalf("startRow=1,endRow=1: got %d rows, want 1", res.Rows)
	}
	if _, _, _, err := ReadFile(path, nil, 2, 1); !isKind(err, schema.BadRange) {
		t.Fatalf("startRow=2,endRow=1: got %v, want BadRange", err)
	}
	if _, _, _, err := ReadFile(path, nil, 5, -1); !isKind(err, schema.RowOutOfRange) {
		t.Fatalf("startRow=5 (of 4 rows): got %v, want RowOutOfRange", err)
	}
}

func TestColumnSelectionIndependence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.fst")
	if err := WriteFile(path, sampleTable(), 25); err != nil {
		t.Fatal(err)
	}

	full, _, _, err := ReadFile(path, nil, 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	single, _, _, err := ReadFile(path, []string{"c"}, 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	var fromFull *ColumnData
	for _, c := range full.Columns {
		if c.Name == "c" {
			fromFull = c
		}
	}
	for i, s := range single.Columns[0].Strings {
		if s != fromFull.Strings[i] {
			t.Fatalf("row %d: single-column read = %q, full read = %q", i, s, fromFull.Strings[i])
		}
	}
}

func TestKeyRemapPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.fst")
	table := sampleTable()
	table.KeyColPos = []int32{0, 2}
	if err := WriteFile(path, table, 0); err != nil {
		t.Fatal(err)
	}
	_, keyIndex, selected, err := ReadFile(path, []string{"c", "a", "b"}, 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(keyIndex) != 2 || keyIndex[0] != 1 || keyIndex[1] != 0 {
		t.Fatalf("got keyIndex %v for selection %v", keyIndex, selected)
	}
}

func buildCycle(values []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = values[i%len(values)]
	}
	return out
}

func isKind(err error, kind schema.ErrorKind) bool {
	e, ok := err.(*schema.Error)
	return ok && e.Kind == kind
}
