/*
Package xrow extracts strongly typed Go values from database/sql rows with
minimal per-row overhead. You write plain SQL; xrow maps each row onto the
fields of your type using a field-to-column mapping that is resolved once per
result set and then reused.

# Overview

A naive mapping looks every field up by name in every row:

	u := User{ID: get(row, "id"), Name: get(row, "name")}

which costs O(F*N) string comparisons per row for F fields and N columns.
xrow instead

 1. resolves names with a lookup plan that buckets names by length and
    compares a 1, 2, 4 or 8 byte discriminator before the full name, so
    resolution is O(N) with a small constant, and
 2. memorizes the resulting Mapping for every following row of the same
    result set.

# Contracts

A type takes part through two methods on its pointer:

	Columns(names []string) (xrow.Mapping, error)
	ExtractWith(m xrow.Mapping, row xrow.Row) error

The xrowgen command generates both for structs marked with an
//xrow:generate comment. Structs without generated methods are derived at
runtime by reflection, following identical rules, and cached per type.

# Mapping rules

  - A field reads the column named by its `column:"name"` tag, or by the
    snake_case form of its Go name (UserID reads user_id).
  - `column:"idx=2"` reads the third column regardless of its name;
    specifying both a name and idx is an error.
  - `column:"-"` skips a field; unexported fields are skipped.
  - Embedded structs without a tag, and fields tagged `column:",inline"`,
    are flattened.
  - Several fields may name the same column; each receives the value.
  - Names match exactly. For drivers that report quoted or upper-case
    names, install a folding mapper once at startup:
    SetDefaultMapper(NewMapper(WithFold())). Generated code always matches
    exactly.
  - A column named by a field but absent from the row is an error
    (ErrMissingColumn); extra columns are ignored.
  - Non-struct types, time.Time and sql.Scanner implementations read the
    single column of a one-column result. A struct whose Scan method is
    promoted from an embedded field is still mapped field by field.

# Extracting

ExtractOnce, Extract and ExtractWith work on any Row (*sql.Rows, Record).
Seq adapts a sequence of rows; Stream adapts a forward-only result set;
Get, Query and Iter execute a query and extract its rows.

# Error handling

Errors are returned, never panicked: missing columns, out-of-range indices,
malformed tags and driver conversion failures all surface as errors.
Get returns sql.ErrNoRows when no row matches.

# Compatibility

xrow works with any database/sql driver. It does not rewrite SQL or
placeholders; write queries exactly as your driver expects.
*/
package xrow
