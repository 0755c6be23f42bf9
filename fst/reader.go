package fst

import (
	"github.com/17ai/fst/column"
	"github.com/17ai/fst/schema"
)

// factorColumn is the column.FactorColumn a read hands its level codes
// and level-name dictionary to.
type factorColumn struct {
	levels *column.SimpleStringColumn
	codes  []int32
}

func (f *factorColumn) LevelData() []int32          { return f.codes }
func (f *factorColumn) Levels() column.StringColumn { return f.levels }

// Result collects a read into the same ColumnData shape Table uses for
// writing, implementing both store.ColumnFactory and store.TableReader.
type Result struct {
	Rows    int
	Columns []*ColumnData
}

func (res *Result) CreateStringColumn(length int, attr schema.ColumnAttribute) column.StringColumn {
	return &column.SimpleStringColumn{}
}

func (res *Result) CreateFactorColumn(length int, attr schema.ColumnAttribute) column.FactorColumn {
	return &factorColumn{levels: &column.SimpleStringColumn{}, codes: make([]int32, length)}
}

func (res *Result) CreateIntColumn(length int, attr schema.ColumnAttribute) column.IntColumn {
	return int32Slice(make([]int32, length))
}

func (res *Result) CreateDoubleColumn(length int, attr schema.ColumnAttribute) column.DoubleColumn {
	return float64Slice(make([]float64, length))
}

func (res *Result) CreateLogicalColumn(length int, attr schema.ColumnAttribute) column.LogicalColumn {
	return int32Slice(make([]int32, length))
}

func (res *Result) CreateInt64Column(length int, attr schema.ColumnAttribute) column.Int64Column {
	return int64Slice(make([]int64, length))
}

func (res *Result) CreateByteColumn(length int, attr schema.ColumnAttribute) column.ByteColumn {
	return byteSlice(make([]byte, length))
}

func (res *Result) InitTable(nrOfSelect, length int) {
	res.Rows = length
	res.Columns = make([]*ColumnData, nrOfSelect)
}

func (res *Result) SetStringColumn(colSel int, sc column.StringColumn, annotation string) {
	ssc := sc.(*column.SimpleStringColumn)
	res.Columns[colSel] = &ColumnData{
		Type:       schema.Character,
		Annotation: annotation,
		Encoding:   ssc.Encoding,
		Strings:    ssc.Values,
		Present:    ssc.Present,
	}
}

func (res *Result) SetFactorColumn(colSel int, fc column.FactorColumn, annotation string) {
	f := fc.(*factorColumn)
	levels := f.levels
	res.Columns[colSel] = &ColumnData{
		Type:       schema.Factor,
		Annotation: annotation,
		Int32s:     f.codes,
		Strings:    levels.Values,
	}
}

func (res *Result) SetIntColumn(colSel int, ic column.IntColumn, annotation string) {
	res.Columns[colSel] = &ColumnData{Type: schema.Int32, Annotation: annotation, Int32s: ic.Data()}
}

func (res *Result) SetDoubleColumn(colSel int, dc column.DoubleColumn, annotation string) {
	res.Columns[colSel] = &ColumnData{Type: schema.Double64, Annotation: annotation, Doubles: dc.Data()}
}

func (res *Result) SetLogicalColumn(colSel int, lc column.LogicalColumn, annotation string) {
	res.Columns[colSel] = &ColumnData{Type: schema.Bool2, Annotation: annotation, Logicals: lc.Data()}
}

func (res *Result) SetInt64Column(colSel int, ic column.Int64Column, annotation string) {
	res.Columns[colSel] = &ColumnData{Type: schema.Int64, Annotation: annotation, Int64s: ic.Data()}
}

func (res *Result) SetByteColumn(colSel int, bc column.ByteColumn, annotation string) {
	res.Columns[colSel] = &ColumnData{Type: schema.Byte, Annotation: annotation, Bytes: bc.Data()}
}
