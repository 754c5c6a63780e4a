package xrow

import (
	"context"
	"database/sql"
)

// Querier is implemented by *sql.DB, *sql.Tx, *sql.Conn, and any wrapper
// that can execute a query returning rows.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Row is the current row of a result set. *sql.Rows and Record implement it.
//
// Columns must report the same names for every row of one result set;
// callers must not modify the returned slice.
type Row interface {
	Columns() ([]string, error)
	Scan(dest ...any) error
}

// Rows is a forward-only result set. *sql.Rows implements it.
type Rows interface {
	Row
	Next() bool
	Err() error
	Close() error
}

var _ Rows = (*sql.Rows)(nil)
