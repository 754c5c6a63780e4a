package xrow

import (
	"database/sql"
	"fmt"
)

// Mapping is the memoized mapping from the fields of a type to the columns of
// one result-set shape: field i is read from column Index(i).
//
// A Mapping stays valid for every row of the result set it was resolved
// from. Reusing it for rows whose columns are ordered differently reads
// values from the wrong columns.
type Mapping struct {
	fields []int
	width  int
	valid  bool
}

// NewMapping returns the mapping of a row with width columns. Generated code
// calls it; fields must be in range.
func NewMapping(width int, fields ...int) Mapping {
	return Mapping{fields: fields, width: width, valid: true}
}

// IsZero reports whether m has not been resolved yet.
func (m Mapping) IsZero() bool { return !m.valid }

// Len returns the number of fields.
func (m Mapping) Len() int { return len(m.fields) }

// Width returns the number of columns of the rows m was resolved from.
func (m Mapping) Width() int { return m.width }

// Index returns the column of field i.
func (m Mapping) Index(i int) int { return m.fields[i] }

// Fields returns a copy of the field-to-column indices.
func (m Mapping) Fields() []int { return append([]int(nil), m.fields...) }

// Check verifies that m was resolved for a type with n fields.
func (m Mapping) Check(typ string, n int) error {
	if !m.valid {
		return fmt.Errorf("%w: %s: zero Mapping", ErrMapping, typ)
	}
	if len(m.fields) != n {
		return fmt.Errorf("%w: %s has %d fields, mapping has %d", ErrMapping, typ, n, len(m.fields))
	}
	return nil
}

// Dest returns empty scan destinations for one row.
func (m Mapping) Dest() *Dest {
	d := &Dest{m: m, args: make([]any, m.width)}
	for i := range d.args {
		d.args[i] = &d.sink
	}
	return d
}

// Dest collects the scan destinations of one row. Columns without a field
// are discarded.
//
// Generated ExtractWith methods look like:
//
//	d := m.Dest()
//	d.Bind(0, &u.ID)
//	d.Bind(1, &u.Name)
//	return d.Scan(row)
type Dest struct {
	m    Mapping
	args []any
	dups []dup
	sink sql.RawBytes // shared by all unmapped columns
}

type dup struct {
	dst, src any
}

// Bind sets the destination of field i. When an earlier field already
// reads the same column, ptr receives a converted copy of that field's value
// after the scan.
func (d *Dest) Bind(i int, ptr any) {
	col := d.m.fields[i]
	if prev := d.args[col]; prev != any(&d.sink) {
		d.dups = append(d.dups, dup{dst: ptr, src: prev})
		return
	}
	d.args[col] = ptr
}

// Scan reads row into the bound destinations.
func (d *Dest) Scan(row Row) error {
	if err := row.Scan(d.args...); err != nil {
		return err
	}
	for _, c := range d.dups {
		v, err := driverValue(c.src)
		if err != nil {
			return err
		}
		if err := convertAssign(c.dst, v); err != nil {
			return fmt.Errorf("xrow: copying shared column: %w", err)
		}
	}
	return nil
}
