package xrow

import (
	"errors"
	"fmt"

	"github.com/go-mizu/xrow/internal/tag"
)

var (
	// ErrMissingColumn is wrapped by a *ColumnError when a named field has
	// no column in the row.
	ErrMissingColumn = errors.New("xrow: missing column")

	// ErrColumnIndex is wrapped by a *ColumnError when a fixed `idx` lies
	// beyond the last column of the row.
	ErrColumnIndex = errors.New("xrow: column index out of range")

	// ErrNoColumns is returned when a result set has zero columns.
	ErrNoColumns = errors.New("xrow: query returned zero columns")

	// ErrMapping is returned when a Mapping does not fit the type or row it is
	// used with, including the zero Mapping.
	ErrMapping = errors.New("xrow: mapping does not fit")

	// ErrInvalidTag is wrapped by errors about malformed `column` tags.
	ErrInvalidTag = tag.ErrInvalid
)

// ColumnError describes a field that could not be mapped to a column.
type ColumnError struct {
	Type   string // Go type being extracted
	Column string // wanted column name, for ErrMissingColumn
	Index  int    // wanted column index, for ErrColumnIndex
	Width  int    // number of columns in the row, for ErrColumnIndex
	Err    error
}

func (e *ColumnError) Error() string {
	if errors.Is(e.Err, ErrColumnIndex) {
		return fmt.Sprintf("%v: %s wants column %d of %d", e.Err, e.Type, e.Index, e.Width)
	}
	return fmt.Sprintf("%v: %s: there is no column named %q", e.Err, e.Type, e.Column)
}

func (e *ColumnError) Unwrap() error { return e.Err }

// MissingColumn is called by generated code.
func MissingColumn(typ, column string) error {
	return &ColumnError{Type: typ, Column: column, Index: -1, Err: ErrMissingColumn}
}

// ColumnOutOfRange is called by generated code.
func ColumnOutOfRange(typ string, index, width int) error {
	return &ColumnError{Type: typ, Index: index, Width: width, Err: ErrColumnIndex}
}
