package xrow

import (
	"fmt"
)

// Record is a row held in memory: column names plus driver values
// (nil, int64, float64, bool, []byte, string or time.Time). It implements
// Row, so records can be extracted after the result set is closed.
type Record struct {
	columns []string
	values  []any
}

// NewRecord returns a Record. It panics if the lengths differ.
func NewRecord(columns []string, values ...any) Record {
	if len(columns) != len(values) {
		panic(fmt.Sprintf("xrow: NewRecord: %d columns, %d values", len(columns), len(values)))
	}
	return Record{columns: columns, values: values}
}

// Columns returns the column names. Records read from one result set share
// the slice.
func (r Record) Columns() ([]string, error) { return r.columns, nil }

// Values returns the driver values in column order.
func (r Record) Values() []any { return r.values }

// Scan copies the values into dest, converting like Rows.Scan.
func (r Record) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("xrow: expected %d destination arguments in Scan, not %d", len(r.values), len(dest))
	}
	for i, v := range r.values {
		if err := convertAssign(dest[i], v); err != nil {
			return fmt.Errorf("xrow: Scan error on column index %d, name %q: %w", i, r.columns[i], err)
		}
	}
	return nil
}

// Records reads the remaining rows into memory. It does not close rows.
func Records(rows Rows) ([]Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, Record{columns: cols, values: vals})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
