package xrow

import (
	"context"
	"database/sql"
)

// Get executes the SQL query and extracts the first row into a value of type T.
//
// It returns [sql.ErrNoRows] if the query yields no rows and does not enforce
// "exactly one row" beyond the first; if more rows exist, they are ignored.
// You should use LIMIT 1 (or an equivalent WHERE clause) when you require
// at-most-one row.
//
// T may be a type with generated Columns/ExtractWith methods, any other
// struct (derived at runtime from `column` tags and field names), a
// primitive, or a type implementing [sql.Scanner].
//
// Example:
//
//	// Given a *sql.DB (or *sql.Tx, *sql.Conn) in variable `db`:
//	type User struct {
//	    ID    int64
//	    Email string `column:"email_address"`
//	}
//
//	ctx := context.Background()
//	u, err := xrow.Get[User](ctx, db, `SELECT id, email_address FROM users WHERE id = $1`, 42)
//	if err != nil {
//	    if errors.Is(err, sql.ErrNoRows) {
//	        // handle not found
//	    } else {
//	        // handle other errors
//	    }
//	}
//	// use u
func Get[T any](ctx context.Context, q Querier, query string, args ...any) (out T, err error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return out, err
	}
	// Ensure Close error is propagated if no earlier error occurred.
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			var zero T
			out = zero
		}
	}()

	if !rows.Next() {
		if ne := rows.Err(); ne != nil {
			return out, ne
		}
		return out, sql.ErrNoRows
	}
	return ExtractOnce[T](rows)
}
