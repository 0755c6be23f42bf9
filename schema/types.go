// Package schema holds the data model shared by every layer of the store
// engine: column types and attributes, scale enums, and the fixed
// per-type block sizes the wire format commits to.
package schema

// ColumnType is the logical type of a column, persisted as colTypes[i] in
// the chunkset header. Unknown is 1; the data types start at 6. All match the original format's
// type codes verbatim so files remain byte-compatible across
// reimplementations of the same format.
type ColumnType uint16

const (
	Unknown   ColumnType = 1
	Character ColumnType = 6
	Factor    ColumnType = 7
	Int32     ColumnType = 8
	Double64  ColumnType = 9
	Bool2     ColumnType = 10
	Int64     ColumnType = 11
	Byte      ColumnType = 12
)

func (t ColumnType) String() string {
	switch t {
	case Character:
		return "character"
	case Factor:
		return "factor"
	case Int32:
		return "int32"
	case Double64:
		return "double64"
	case Bool2:
		return "bool2"
	case Int64:
		return "int64"
	case Byte:
		return "byte"
	default:
		return "unknown"
	}
}

// ColumnAttribute is a semantic refinement of a base ColumnType — e.g. an
// Int32 column attributed as DateDays instead of plain Int32Base. Codes
// match the original format verbatim.
type ColumnAttribute uint16

const (
	AttrNone ColumnAttribute = 1

	AttrCharacterBase ColumnAttribute = 2

	AttrFactorBase    ColumnAttribute = 3
	AttrFactorOrdered ColumnAttribute = 4

	AttrInt32Base             ColumnAttribute = 5
	AttrInt32TimestampSeconds ColumnAttribute = 6
	AttrInt32TimeIntervalSecs ColumnAttribute = 7
	AttrInt32DateDays         ColumnAttribute = 8
	AttrInt32TimeOfDaySeconds ColumnAttribute = 9

	AttrDouble64Base             ColumnAttribute = 10
	AttrDouble64DateDays         ColumnAttribute = 11
	AttrDouble64TimestampSeconds ColumnAttribute = 12
	AttrDouble64TimeIntervalSecs ColumnAttribute = 13
	AttrDouble64TimeOfDaySeconds ColumnAttribute = 14

	AttrBool2Base ColumnAttribute = 15

	AttrInt64Base        ColumnAttribute = 16
	AttrInt64TimeSeconds ColumnAttribute = 17

	AttrByteBase ColumnAttribute = 18
)

// Scale is a power-of-ten exponent applicable to Int32, Double64 and Int64
// columns. The closed set matches spec.md §3's pico..tera list.
type Scale int16

const (
	ScalePico  Scale = -12
	ScaleNano  Scale = -9
	ScaleMicro Scale = -6
	ScaleMilli Scale = -3
	ScaleUnity Scale = 0
	ScaleKilo  Scale = 3
	ScaleMega  Scale = 6
	ScaleGiga  Scale = 9
	ScaleTera  Scale = 12
)

// TimeScale enumerates the sub-second-to-year units used by
// time-of-day/time-interval attributed columns, carried verbatim from the
// format this spec was distilled from.
type TimeScale int16

const (
	TimeNanoseconds  TimeScale = 1
	TimeMicroseconds TimeScale = 2
	TimeMilliseconds TimeScale = 3
	TimeSeconds      TimeScale = 4
	TimeMinutes      TimeScale = 5
	TimeHours        TimeScale = 6
	TimeDays         TimeScale = 7
	TimeYears        TimeScale = 8
)

// StringEncoding tags how a character column's raw bytes should be
// interpreted.
type StringEncoding uint8

const (
	EncodingNative StringEncoding = 1
	EncodingUTF8   StringEncoding = 2
	EncodingLatin1 StringEncoding = 3
)
