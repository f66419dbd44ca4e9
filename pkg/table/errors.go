package table

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a name reference is not in the header.
	ErrColumnNotFound = errors.New("column not found")
	// ErrIndexOutOfRange is returned for a column or row position outside its bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidReference is returned when a column reference is neither a name nor a position.
	ErrInvalidReference = errors.New("invalid column reference")
	// ErrShape is returned when a row does not have as many cells as the table has columns.
	ErrShape = errors.New("row width mismatch")
	// ErrInvalidArgument is returned when a required argument is missing.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFormat is returned when an ingested record does not match the header width.
	ErrFormat = errors.New("malformed source")
	// ErrConfiguration is returned for an unusable header, e.g. duplicate column names.
	ErrConfiguration = errors.New("invalid table configuration")
)

// ShapeError reports a row whose width differs from the table width.
type ShapeError struct {
	Op   string // operation that rejected the row ("append", "set_row", ...)
	Row  int    // row position, -1 when the row is not in the table yet
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("%s: row %d: expected %d values, got %d", e.Op, e.Row, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: expected %d values, got %d", e.Op, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error { return ErrShape }

// FormatError reports a source record whose width differs from the header.
// Record is 1-based and counts the header record when it was read from the source.
type FormatError struct {
	Record int
	Want   int
	Got    int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("record %d: expected %d fields, got %d", e.Record, e.Want, e.Got)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

func columnNotFound(name string) error {
	return fmt.Errorf("%w: the table has no column named %q", ErrColumnNotFound, name)
}

func columnOutOfRange(pos, width int) error {
	return fmt.Errorf("%w: column %d not in [0, %d)", ErrIndexOutOfRange, pos, width)
}

func rowOutOfRange(pos, n int) error {
	return fmt.Errorf("%w: row %d not in [0, %d)", ErrIndexOutOfRange, pos, n)
}
