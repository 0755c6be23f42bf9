package main

import (
	"fmt"
	"os"

	"github.com/17ai/fst/fst"
	"github.com/17ai/fst/schema"
)

func main() {
	path := "./demo.fst"

	table := &fst.Table{
		Rows:      5,
		KeyColPos: []int32{0},
		Columns: []*fst.ColumnData{
			{
				Name: "id", Type: schema.Int32, Attr: schema.AttrInt32Base,
				Int32s: []int32{1, 2, 3, 4, schema.NAInt32},
			},
			{
				Name: "city", Type: schema.Character, Attr: schema.AttrCharacterBase,
				Encoding: schema.EncodingUTF8,
				Strings:  []string{"paris", "london", "berlin", "", "rome"},
			},
			{
				Name: "grade", Type: schema.Factor, Attr: schema.AttrFactorBase,
				Strings: []string{"a", "b", "a", "c", "b"},
			},
			{
				Name: "score", Type: schema.Double64, Attr: schema.AttrDouble64Base,
				Doubles: []float64{1.5, 2.25, 0, -0.0, 99.9},
			},
		},
	}

	if err := fst.WriteFile(path, table, 50); err != nil {
		fmt.Fprintln(os.Stderr, "write failed:", err)
		os.Exit(1)
	}

	res, keyIndex, selectedCols, err := fst.ReadFile(path, nil, 2, 4)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read failed:", err)
		os.Exit(1)
	}

	fmt.Printf("read %d rows, columns %v, keyIndex %v\n", res.Rows, selectedCols, keyIndex)
	for _, col := range res.Columns {
		fmt.Printf("  %s (%s): %v\n", col.Name, col.Type, columnValues(col))
	}
}

func columnValues(col *fst.ColumnData) any {
	switch col.Type {
	case schema.Int32:
		return col.Int32s
	case schema.Double64:
		return col.Doubles
	case schema.Character:
		return col.Strings
	case schema.Factor:
		return struct {
			Codes  []int32
			Levels []string
		}{col.Int32s, col.Strings}
	default:
		return nil
	}
}
