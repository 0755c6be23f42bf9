package store

import (
	"github.com/17ai/fst/column"
	"github.com/17ai/fst/schema"
)

// Table is the write-side capability a host provides: column metadata
// plus one typed writer accessor per logical type. The engine calls
// exactly the accessor matching ColumnType's reported type for a given
// column index.
type Table interface {
	NrOfCols() int
	NrOfRows() int
	NrOfKeys() int
	KeyColumns() []int32

	// ColumnType reports colNr's logical type, semantic attribute, scale,
	// and free-form annotation.
	ColumnType(colNr int) (schema.ColumnType, schema.ColumnAttribute, schema.Scale, string)

	ColNameWriter() column.StringWriter

	StringWriter(colNr int) column.StringWriter
	LevelWriter(colNr int) column.StringWriter
	IntWriter(colNr int) column.IntWriter
	DoubleWriter(colNr int) column.DoubleWriter
	LogicalWriter(colNr int) column.LogicalWriter
	Int64Writer(colNr int) column.Int64Writer
	ByteWriter(colNr int) column.ByteWriter
}

// ColumnFactory produces freshly owned, empty column containers sized
// for length rows. The engine fills the returned container via the
// matching codec, then hands it to TableReader and releases its own
// reference.
type ColumnFactory interface {
	CreateStringColumn(length int, attr schema.ColumnAttribute) column.StringColumn
	CreateFactorColumn(length int, attr schema.ColumnAttribute) column.FactorColumn
	CreateIntColumn(length int, attr schema.ColumnAttribute) column.IntColumn
	CreateDoubleColumn(length int, attr schema.ColumnAttribute) column.DoubleColumn
	CreateLogicalColumn(length int, attr schema.ColumnAttribute) column.LogicalColumn
	CreateInt64Column(length int, attr schema.ColumnAttribute) column.Int64Column
	CreateByteColumn(length int, attr schema.ColumnAttribute) column.ByteColumn
}

// TableReader is the read-side capability a host provides: it is told
// the shape of the result up front via InitTable, then receives each
// selected column, in selection order, via the Set* call matching its
// type.
type TableReader interface {
	InitTable(nrOfSelect, length int)

	SetStringColumn(colSel int, sc column.StringColumn, annotation string)
	SetFactorColumn(colSel int, fc column.FactorColumn, annotation string)
	SetIntColumn(colSel int, ic column.IntColumn, annotation string)
	SetDoubleColumn(colSel int, dc column.DoubleColumn, annotation string)
	SetLogicalColumn(colSel int, lc column.LogicalColumn, annotation string)
	SetInt64Column(colSel int, ic column.Int64Column, annotation string)
	SetByteColumn(colSel int, bc column.ByteColumn, annotation string)
}
