package xrow

import (
	"iter"
)

// Seq turns a sequence of rows into a sequence of T. The mapping is resolved
// from the first row and reused for the rest, so every row must order its
// columns like the first one.
//
// Iteration stops after the first error, which is yielded with the zero T.
//
// Example:
//
//	recs, _ := xrow.Records(rows)
//	for u, err := range xrow.Seq[User](slices.Values(recs)) {
//	    // ...
//	}
func Seq[T any, R Row](rows iter.Seq[R]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var m Mapping
		for row := range rows {
			v, err := Extract[T](&m, row)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
