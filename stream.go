package xrow

import (
	"iter"
)

// Stream extracts values of type T from a forward-only result set,
// resolving the mapping once for all rows.
//
// Example:
//
//	rows, err := db.QueryContext(ctx, `SELECT id, name FROM users`)
//	if err != nil {
//	    return err
//	}
//	s := xrow.NewStream[User](rows)
//	defer s.Close()
//	for s.Next() {
//	    fmt.Println(s.Value().Name)
//	}
//	return s.Err()
type Stream[T any] struct {
	// Rows is the underlying result set. It is exported for access to
	// driver specific methods; advancing it directly skips rows.
	Rows Rows

	m   Mapping
	cur T
	err error
}

// NewStream returns a Stream over rows.
func NewStream[T any](rows Rows) *Stream[T] {
	return &Stream[T]{Rows: rows}
}

// Next advances to the next row and extracts it. It returns false at the
// end of the result set or after an error; check Err.
func (s *Stream[T]) Next() bool {
	if s.err != nil || !s.Rows.Next() {
		return false
	}
	s.cur, s.err = Extract[T](&s.m, s.Rows)
	return s.err == nil
}

// Value returns the value extracted by the last successful Next.
func (s *Stream[T]) Value() T { return s.cur }

// Mapping returns the mapping in use; it is zero before the first row.
func (s *Stream[T]) Mapping() Mapping { return s.m }

// Err returns the first extraction error, or the result set's error.
func (s *Stream[T]) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.Rows.Err()
}

// Close closes the underlying rows.
func (s *Stream[T]) Close() error { return s.Rows.Close() }

// All yields every remaining value. A failure is yielded once, as the last
// element, with the zero T.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for s.Next() {
			if !yield(s.cur, nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect extracts every remaining value.
func (s *Stream[T]) Collect() ([]T, error) {
	var out []T
	for s.Next() {
		out = append(out, s.cur)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
