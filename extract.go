package xrow

import (
	"reflect"
)

// Columner is implemented by types whose fields map to result-set columns.
//
// Columns returns the mapping from the type's fields to the given column
// names. For
//
//	//xrow:generate
//	type User struct {
//	    ID   int32
//	    Name string
//	}
//
// and the columns of `select 'john' name, 123 balance, 1 id`, Columns returns
// a Mapping with indices [2, 0]: ID reads the third column and Name the first.
//
// Columns is called on a nil receiver and must not read it. The method is
// almost always generated by xrowgen.
type Columner interface {
	Columns(names []string) (Mapping, error)
}

// Extracter is implemented by pointers to types that can be extracted from
// a Row, given the Mapping their Columns method produced. It is usually
// generated by xrowgen together with Columner:
//
//	func (x *User) ExtractWith(m xrow.Mapping, row xrow.Row) error {
//	    if err := m.Check("User", 2); err != nil {
//	        return err
//	    }
//	    d := m.Dest()
//	    d.Bind(0, &x.ID)
//	    d.Bind(1, &x.Name)
//	    return d.Scan(row)
//	}
//
// Types that do not implement Extracter are handled by the reflection
// deriver, which follows the same field rules.
type Extracter interface {
	Columner
	ExtractWith(m Mapping, row Row) error
}

// ColumnsOf returns the Mapping of T for a row with the given column names.
func ColumnsOf[T any](names []string) (Mapping, error) {
	if c, ok := any((*T)(nil)).(Columner); ok {
		if len(names) == 0 {
			return Mapping{}, ErrNoColumns
		}
		return c.Columns(names)
	}
	return getMapper().Columns(reflect.TypeFor[T](), names)
}

// ExtractOnce extracts a T from row.
//
// When extracting more than one row of a result set, prefer Extract with a
// shared Mapping, Seq or Stream: they resolve the mapping once instead of
// once per row.
//
// Example:
//
//	rows, err := db.QueryContext(ctx, `SELECT id, name FROM users WHERE id = $1`, 42)
//	// ...
//	if rows.Next() {
//	    u, err := xrow.ExtractOnce[User](rows)
//	}
func ExtractOnce[T any](row Row) (T, error) {
	var m Mapping
	return Extract[T](&m, row)
}

// Extract extracts a T from row, memorizing the mapping between fields and
// columns in m. A zero *m is resolved from row's columns and stored; a
// resolved *m is used as is.
//
// All rows extracted with one Mapping must order their columns the same way,
// which holds for rows produced by a single statement. Otherwise values are
// read from the memoized positions, or the scan fails when the number of
// columns differs.
//
// Example:
//
//	var m xrow.Mapping
//	for rows.Next() {
//	    u, err := xrow.Extract[User](&m, rows)
//	    // ...
//	}
func Extract[T any](m *Mapping, row Row) (T, error) {
	if m.IsZero() {
		names, err := row.Columns()
		if err != nil {
			var zero T
			return zero, err
		}
		resolved, err := ColumnsOf[T](names)
		if err != nil {
			var zero T
			return zero, err
		}
		*m = resolved
	}
	return ExtractWith[T](*m, row)
}

// ExtractWith extracts a T from row using a known mapping. On error the
// zero T is returned, never a partly filled one.
func ExtractWith[T any](m Mapping, row Row) (T, error) {
	var v T
	var err error
	if e, ok := any(&v).(Extracter); ok {
		err = e.ExtractWith(m, row)
	} else {
		err = getMapper().ExtractWith(reflect.ValueOf(&v).Elem(), m, row)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
