package schema

// FSTVersion is this engine's compiled format version. It is written as
// both FST_VERSION and FST_VERSION_MAX in every header this engine
// produces.
const FSTVersion uint32 = 2

// Fixed on-disk sizes from spec.md §6, used by the store package to lay
// out and parse the metadata region without guessing offsets.
const (
	TableHeaderSize     = 44
	ChunksetHeaderBase  = 76 // + 8*nrOfCols
	ColNamesHeaderSize  = 24
	ChunkIndexSize      = 96
	DataIndexHeaderBase = 24 // + 8*nrOfCols
	NrOfChunkSlots      = 4
)

// Per-type block sizes (in elements) and read batch sizes. These are
// format-mandated constants, not user-tunable configuration: changing one
// changes the bytes a conformant writer produces.
const (
	BlockSizeCharMeta = 4096  // elements (u32 cumulative end-offset entries) per block
	BlockSizeCharData = 65536 // bytes per block of packed UTF-8 payload
	BlockSizeInt32    = 4096
	BlockSizeDouble64 = 2048
	BlockSizeBool2    = 65536 // packed-byte elements; 4 logical values/byte
	BlockSizeInt64    = 2048
	BlockSizeByte     = 16384

	BatchSizeReadChar   = 4096
	BatchSizeReadInt32  = 4096
	BatchSizeReadDouble = 2048
	BatchSizeReadBool2  = 65536
	BatchSizeReadInt64  = 2048
	BatchSizeReadByte   = 16384
)

// NA sentinels for fixed-width numeric types. FACTOR's level vector uses
// 0 for missing instead (spec.md §3) — that convention lives in the
// factor column, not here, since it overrides rather than reuses Int32's
// sentinel.
const (
	NAInt32 int32 = -2147483648 // INT_MIN
	NAInt64 int64 = -9223372036854775808
)
