package xrow

import (
	"context"
	"iter"
)

// Query executes the SQL query and extracts all result rows into a slice of T.
//
// The field-to-column mapping is resolved from the first row and reused for
// the rest. T follows the same rules as in [Get].
//
// Example:
//
//	// Given a *sql.DB (or *sql.Tx, *sql.Conn) in variable `db`:
//	ctx := context.Background()
//	users, err := xrow.Query[User](ctx, db, `SELECT id, email_address FROM users ORDER BY id`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, u := range users {
//	    fmt.Println(u.ID, u.Email)
//	}
func Query[T any](ctx context.Context, q Querier, query string, args ...any) (out []T, err error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	// Propagate rows.Close() error if nothing else failed.
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			out = nil
		}
	}()

	return NewStream[T](rows).Collect()
}

// Iter executes the SQL query when iteration starts and yields one T per
// row. The rows are closed when iteration ends, including on early break.
// A failure is yielded once, as the last element.
//
// Example:
//
//	for u, err := range xrow.Iter[User](ctx, db, `SELECT id, email_address FROM users`) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(u.ID)
//	}
func Iter[T any](ctx context.Context, q Querier, query string, args ...any) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			yield(zero, err)
			return
		}
		s := NewStream[T](rows)
		for s.Next() {
			if !yield(s.Value(), nil) {
				_ = rows.Close()
				return
			}
		}
		err = s.Err()
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			yield(zero, err)
		}
	}
}
