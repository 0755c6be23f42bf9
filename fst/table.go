// Package fst is a minimal in-memory reference implementation of
// store.Table, store.TableReader and store.ColumnFactory, plus
// convenience WriteFile/ReadFile wrappers. It exists so the store engine
// has something concrete to round-trip against in tests and the demo
// command — it is deliberately not a general-purpose data-frame binding.
package fst

import (
	"github.com/17ai/fst/column"
	"github.com/17ai/fst/schema"
)

// ColumnData holds one column's values in whichever typed slice matches
// its Type; the rest are nil. A FACTOR column returned by a read is the
// exception: Int32s holds its 1-based level codes (0 for NA) and Strings
// its level names.
type ColumnData struct {
	Name       string
	Type       schema.ColumnType
	Attr       schema.ColumnAttribute
	Scale      schema.Scale
	Annotation string
	Encoding   schema.StringEncoding

	// Strings/Present back CHARACTER columns, and FACTOR columns before
	// level assignment (the codec builds the level dictionary itself).
	Strings []string
	Present []bool

	Int32s   []int32
	Int64s   []int64
	Doubles  []float64
	Logicals []int32
	Bytes    []byte
}

// Table is an ordered collection of equal-length columns plus an
// optional key prefix, implementing store.Table.
type Table struct {
	Rows      int
	KeyColPos []int32
	Columns   []*ColumnData
}

func (t *Table) NrOfCols() int       { return len(t.Columns) }
func (t *Table) NrOfRows() int       { return t.Rows }
func (t *Table) NrOfKeys() int       { return len(t.KeyColPos) }
func (t *Table) KeyColumns() []int32 { return t.KeyColPos }

func (t *Table) ColumnType(colNr int) (schema.ColumnType, schema.ColumnAttribute, schema.Scale, string) {
	c := t.Columns[colNr]
	return c.Type, c.Attr, c.Scale, c.Annotation
}

// ColNameWriter always reports NATIVE encoding for the column-names
// vector, matching the original format's hardcoded behavior.
func (t *Table) ColNameWriter() column.StringWriter {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return column.SimpleStringWriter{Values: names, Enc: schema.EncodingNative}
}

func (t *Table) StringWriter(colNr int) column.StringWriter {
	c := t.Columns[colNr]
	return column.SimpleStringWriter{Values: c.Strings, Present: c.Present, Enc: c.Encoding}
}

func (t *Table) LevelWriter(colNr int) column.StringWriter {
	return t.StringWriter(colNr)
}

func (t *Table) IntWriter(colNr int) column.IntWriter { return int32Slice(t.Columns[colNr].Int32s) }

func (t *Table) DoubleWriter(colNr int) column.DoubleWriter {
	return float64Slice(t.Columns[colNr].Doubles)
}

func (t *Table) LogicalWriter(colNr int) column.LogicalWriter {
	return int32Slice(t.Columns[colNr].Logicals)
}

func (t *Table) Int64Writer(colNr int) column.Int64Writer {
	return int64Slice(t.Columns[colNr].Int64s)
}

func (t *Table) ByteWriter(colNr int) column.ByteWriter { return byteSlice(t.Columns[colNr].Bytes) }

// int32Slice/int64Slice/float64Slice/byteSlice adapt a plain slice to
// the column package's Data()-based writer/column interfaces; the same
// wrapper type serves both roles since both just expose the slice.
type int32Slice []int32

func (s int32Slice) Data() []int32 { return s }

type int64Slice []int64

func (s int64Slice) Data() []int64 { return s }

type float64Slice []float64

func (s float64Slice) Data() []float64 { return s }

type byteSlice []byte

func (s byteSlice) Data() []byte { return s }
