package schema

import "fmt"

// ErrorKind is one of the fatal failure kinds a read or write operation can
// surface, per spec.md §7. The core never panics for an on-disk validation
// failure. Hash mismatches, the version gate, empty tables, row/column
// selection failures, unknown type codes and column codec failures during a
// write return an *Error wrapping one of these. Short reads, record-size or
// slot-count mismatches inside a header, column codec failures during a
// read, and I/O failures of a write outside the column payloads are
// returned as plain wrapped errors that carry no kind.
type ErrorKind int

const (
	CannotOpenRead ErrorKind = iota + 1
	CannotOpenWrite
	CannotOpenFile
	NonFstFile
	UpdateRequired
	DamagedHeader
	DamagedChunkIndex
	NoData
	EmptyTable
	ColumnNotFound
	ColumnOutOfRange
	NegativeRow
	RowOutOfRange
	BadRange
	UnknownType
	WriteFailed
)

func (k ErrorKind) String() string {
	switch k {
	case CannotOpenRead:
		return "cannot open file for reading"
	case CannotOpenWrite:
		return "cannot open file for writing"
	case CannotOpenFile:
		return "cannot open file"
	case NonFstFile:
		return "not a valid fst file"
	case UpdateRequired:
		return "file requires a newer reader version"
	case DamagedHeader:
		return "damaged header"
	case DamagedChunkIndex:
		return "damaged chunk index"
	case NoData:
		return "table has no rows"
	case EmptyTable:
		return "table has no columns"
	case ColumnNotFound:
		return "selected column not found"
	case ColumnOutOfRange:
		return "column selection out of range"
	case NegativeRow:
		return "startRow must be positive"
	case RowOutOfRange:
		return "row selection out of range"
	case BadRange:
		return "incorrect row range"
	case UnknownType:
		return "unknown column type"
	case WriteFailed:
		return "write failed, file may be corrupted"
	default:
		return "unknown error"
	}
}

// Error wraps an ErrorKind with operation-specific context. Callers use
// errors.Is(err, schema.ErrKind(schema.DamagedHeader)) (via Is) or inspect
// Kind directly.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func WrapError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, SomeKind) work by comparing against a sentinel
// wrapping just that kind, e.g. errors.Is(err, schema.ErrKind(DamagedHeader)).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// ErrKind returns a bare sentinel *Error carrying only kind, suitable for
// use with errors.Is.
func ErrKind(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}
