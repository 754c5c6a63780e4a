// Package tag parses `column` struct tags and derives default column names.
package tag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm/schema"
)

// Key is the struct tag key read by both the reflection deriver and xrowgen.
const Key = "column"

// ErrInvalid is wrapped by every error returned from Parse.
var ErrInvalid = errors.New("xrow: invalid column tag")

// Spec is a parsed column tag.
type Spec struct {
	Name   string // explicit column name, "" when unset
	Index  int    // explicit column index, -1 when unset
	Skip   bool
	Inline bool
}

// Parse supports: "-", "name", "name=x", "idx=2", ",inline" and
// comma-separated combinations such as "x,inline".
func Parse(tag string) (Spec, error) {
	s := Spec{Index: -1}
	if tag == "-" {
		s.Skip = true
		return s, nil
	}
	var hasName, hasIdx bool
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case part == "inline":
			s.Inline = true
		case strings.HasPrefix(part, "idx="):
			if hasIdx {
				return s, fmt.Errorf("%w: `idx` specified multiple times in %q", ErrInvalid, tag)
			}
			n, err := strconv.Atoi(part[len("idx="):])
			if err != nil || n < 0 {
				return s, fmt.Errorf("%w: `idx` must be a non-negative integer in %q", ErrInvalid, tag)
			}
			s.Index, hasIdx = n, true
		case strings.HasPrefix(part, "name="):
			if hasName {
				return s, fmt.Errorf("%w: `name` specified multiple times in %q", ErrInvalid, tag)
			}
			s.Name, hasName = part[len("name="):], true
			if s.Name == "" {
				return s, fmt.Errorf("%w: empty `name` in %q", ErrInvalid, tag)
			}
		case strings.ContainsRune(part, '='):
			return s, fmt.Errorf("%w: unknown attribute %q", ErrInvalid, part)
		default:
			if hasName {
				return s, fmt.Errorf("%w: `name` specified multiple times in %q", ErrInvalid, tag)
			}
			s.Name, hasName = part, true
		}
	}
	if hasName && hasIdx {
		return s, fmt.Errorf("%w: cannot specify both `idx` and `name` in %q", ErrInvalid, tag)
	}
	return s, nil
}

var naming = schema.NamingStrategy{}

// ColumnName returns the default column name of a Go field: UserID -> user_id.
func ColumnName(field string) string {
	return naming.ColumnName("", field)
}
