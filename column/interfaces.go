// Package column implements the seven typed column codecs: character,
// factor, int32, double, logical (2-bit boolean), int64, and byte. Each
// fixes an element size and block size and delegates the actual
// compression/decompression to the block package.
//
// The capability interfaces below are the bridge between a host's own
// column containers and the codecs: the codecs read from / write to them
// without owning or knowing anything about the host's memory layout.
package column

import "github.com/17ai/fst/schema"

// StringEncoding tags how a character column's bytes are interpreted.
type StringEncoding = schema.StringEncoding

// StringArray is a fixed-length array of strings. The engine itself does
// not call it: column names and factor level names are written through
// StringWriter and read through StringColumn.
type StringArray interface {
	AllocateArray(length int)
	SetElement(i int, s string)
	GetElement(i int) string
	Length() int
}

// StringWriter exposes a host-owned sequence of strings (with a byte
// encoding tag) to the character codec on write.
type StringWriter interface {
	Encoding() StringEncoding
	Length() int
	// GetElement returns the element at i and whether it is present
	// (false means NA).
	GetElement(i int) (string, bool)
}

// StringColumn is a freshly allocated, host-owned string container the
// character codec fills on read.
type StringColumn interface {
	AllocateVec(length int)
	SetEncoding(enc StringEncoding)
	// BufferToVec hands the host the raw size-meta table and packed bytes
	// for elements [startElem, endElem) of the requested range, writing
	// them starting at vecOffset in the host's own container. Each sizeMeta
	// entry is the element's cumulative end offset into buf; an entry with
	// the high bit (0x80000000) set means the element is missing.
	BufferToVec(startElem, endElem, vecOffset int, sizeMeta []uint32, buf []byte)
}

// IntWriter exposes a host-owned []int32 of an int32 column on write.
// Factor level codes do not pass through it: the factor codec derives
// them from a StringWriter.
type IntWriter interface {
	Data() []int32
}

// IntColumn is a freshly allocated []int32 container the int32 codec
// fills on read.
type IntColumn interface {
	Data() []int32
}

// Int64Writer/Int64Column mirror IntWriter/IntColumn for int64 columns.
type Int64Writer interface {
	Data() []int64
}

type Int64Column interface {
	Data() []int64
}

// DoubleWriter/DoubleColumn mirror IntWriter/IntColumn for double columns.
type DoubleWriter interface {
	Data() []float64
}

type DoubleColumn interface {
	Data() []float64
}

// LogicalWriter/LogicalColumn carry tri-state booleans as int32: 0 false,
// 1 true, NAInt32 for missing.
type LogicalWriter interface {
	Data() []int32
}

type LogicalColumn interface {
	Data() []int32
}

// ByteWriter/ByteColumn mirror IntWriter/IntColumn for raw byte columns.
type ByteWriter interface {
	Data() []byte
}

type ByteColumn interface {
	Data() []byte
}

// FactorColumn is a freshly allocated factor container the factor codec
// fills on read: a level-code vector plus the associated level-name
// string column.
type FactorColumn interface {
	LevelData() []int32
	Levels() StringColumn
}
