// Package lookup resolves result-set column names to struct fields.
//
// A Plan groups the unique column names of a type by byte length. Inside a
// group with more than one name, it picks the first 1, 2, 4 or 8 byte window
// in which every name differs, reads that window as a little-endian integer
// (the discriminator) and only compares full strings for the one candidate
// that carries the same discriminator. Resolving a row of N columns therefore
// costs O(N) comparisons with a small constant, instead of the O(N*F) of a
// naive name search per field.
//
// xrowgen renders the same plan as nested switch statements, so generated
// code and the reflection deriver always agree on the mapping.
package lookup

import (
	"fmt"
	"sort"
)

// Field identifies the column of one struct field: a name, or a fixed index.
type Field struct {
	Name  string
	Index int // fixed column position, -1 when resolved by Name
}

// Entry is one unique name inside a Group.
type Entry struct {
	Name  string
	Field int    // lowest field index carrying Name
	Key   uint64 // discriminator, zero for groups that compare full names
}

// Group holds every unique name of one byte length.
type Group struct {
	Len     int
	Offset  int
	Width   int // 0: compare full names
	Entries []Entry
}

// Repeat records a field whose name is already owned by a lower field.
type Repeat struct {
	Field int
	Of    int
}

// Plan is the immutable lookup structure of one struct type.
type Plan struct {
	fields  []Field
	unique  int
	single  string
	repeats []Repeat
	groups  []Group
	byLen   []*Group
}

// MissingError reports a named field with no matching column.
type MissingError struct {
	Column string
	Field  int
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("there is no column named %q", e.Column)
}

// RangeError reports a fixed index beyond the width of the row.
type RangeError struct {
	Field int
	Index int
	Width int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("column index %d out of range for a row of %d columns", e.Index, e.Width)
}

// Build validates fields and computes their plan.
func Build(fields []Field) (*Plan, error) {
	p := &Plan{fields: append([]Field(nil), fields...)}
	owner := make(map[string]int)
	byLen := make(map[int][]Entry)
	for i, f := range fields {
		switch {
		case f.Index >= 0 && f.Name != "":
			return nil, fmt.Errorf("lookup: field %d has both a name and an index", i)
		case f.Index >= 0:
			continue
		case f.Name == "":
			return nil, fmt.Errorf("lookup: field %d has neither a name nor an index", i)
		}
		if of, ok := owner[f.Name]; ok {
			p.repeats = append(p.repeats, Repeat{Field: i, Of: of})
			continue
		}
		owner[f.Name] = i
		byLen[len(f.Name)] = append(byLen[len(f.Name)], Entry{Name: f.Name, Field: i})
		p.single = f.Name
	}
	p.unique = len(owner)
	if p.unique == 0 {
		return p, nil
	}

	maxLen := 0
	for n, entries := range byLen {
		sort.Slice(entries, func(a, b int) bool { return entries[a].Name < entries[b].Name })
		p.groups = append(p.groups, buildGroup(n, entries))
		if n > maxLen {
			maxLen = n
		}
	}
	sort.Slice(p.groups, func(a, b int) bool { return p.groups[a].Len < p.groups[b].Len })
	p.byLen = make([]*Group, maxLen+1)
	for i := range p.groups {
		p.byLen[p.groups[i].Len] = &p.groups[i]
	}
	return p, nil
}

func buildGroup(n int, entries []Entry) Group {
	g := Group{Len: n, Entries: entries}
	if len(entries) == 1 {
		return g
	}
	switch n {
	case 1, 2, 4, 8:
		// The whole name already fits in one machine word.
		return g
	}
	seen := make(map[uint64]struct{}, len(entries))
	for _, w := range [...]int{1, 2, 4, 8} {
		if w > n {
			break
		}
	window:
		for off := 0; off+w <= n; off++ {
			clear(seen)
			for _, e := range entries {
				k := Key(e.Name, off, w)
				if _, dup := seen[k]; dup {
					continue window
				}
				seen[k] = struct{}{}
			}
			g.Offset, g.Width = off, w
			for i := range g.Entries {
				g.Entries[i].Key = Key(g.Entries[i].Name, off, w)
			}
			return g
		}
	}
	return g
}

// Key reads width bytes of name starting at off as a little-endian integer.
func Key(name string, off, width int) uint64 {
	var k uint64
	for i := width - 1; i >= 0; i-- {
		k = k<<8 | uint64(name[off+i])
	}
	return k
}

// Lookup returns the field that owns column name.
func (p *Plan) Lookup(name string) (int, bool) {
	if len(name) >= len(p.byLen) {
		return -1, false
	}
	g := p.byLen[len(name)]
	if g == nil {
		return -1, false
	}
	if g.Width == 0 {
		for _, e := range g.Entries {
			if e.Name == name {
				return e.Field, true
			}
		}
		return -1, false
	}
	k := Key(name, g.Offset, g.Width)
	for _, e := range g.Entries {
		if e.Key == k {
			if e.Name == name {
				return e.Field, true
			}
			return -1, false
		}
	}
	return -1, false
}

// Resolve maps every field to a position in columns. When a name occurs in
// several columns, the first occurrence wins.
func (p *Plan) Resolve(columns []string) ([]int, error) {
	idx := make([]int, len(p.fields))
	for i, f := range p.fields {
		if f.Index < 0 {
			idx[i] = -1
			continue
		}
		if f.Index >= len(columns) {
			return nil, &RangeError{Field: i, Index: f.Index, Width: len(columns)}
		}
		idx[i] = f.Index
	}

	switch p.unique {
	case 0:
		return idx, nil
	case 1:
		for ci, c := range columns {
			if c == p.single {
				for i, f := range p.fields {
					if f.Index < 0 {
						idx[i] = ci
					}
				}
				return idx, nil
			}
		}
		return nil, p.missing(idx)
	}

	todo := p.unique
	for ci, c := range columns {
		f, ok := p.Lookup(c)
		if !ok || idx[f] != -1 {
			continue
		}
		idx[f] = ci
		if todo--; todo == 0 {
			break
		}
	}
	if todo > 0 {
		return nil, p.missing(idx)
	}
	for _, r := range p.repeats {
		idx[r.Field] = idx[r.Of]
	}
	return idx, nil
}

func (p *Plan) missing(idx []int) error {
	for i, f := range p.fields {
		if f.Index < 0 && idx[i] == -1 {
			return &MissingError{Column: f.Name, Field: i}
		}
	}
	return &MissingError{Field: -1}
}

// Fields returns the fields the plan was built from.
func (p *Plan) Fields() []Field { return p.fields }

// Unique returns the number of distinct column names.
func (p *Plan) Unique() int { return p.unique }

// Single returns the only column name when Unique is 1.
func (p *Plan) Single() string {
	if p.unique != 1 {
		return ""
	}
	return p.single
}

// Repeats lists fields sharing a name with a lower field.
func (p *Plan) Repeats() []Repeat { return p.repeats }

// Groups returns the length groups sorted by length.
func (p *Plan) Groups() []Group { return p.groups }
