package xrow

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/go-mizu/xrow/internal/lookup"
	"github.com/go-mizu/xrow/internal/tag"
)

// Mapper derives Columner and Extracter behavior at runtime for types that
// have no generated methods, and caches one derived extractor per type.
// Install a configured one with SetDefaultMapper.
type Mapper struct {
	cache sync.Map // key: reflect.Type -> *derived

	// Fold compares column names ASCII case-insensitively and strips one
	// level of "", `` or [] quoting from them. Set it before first use.
	Fold bool

	// Logger receives a debug entry for every derived type. Nil disables logging.
	Logger *zap.Logger
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithFold sets Mapper.Fold.
func WithFold() MapperOption {
	return func(m *Mapper) { m.Fold = true }
}

// WithLogger sets Mapper.Logger.
func WithLogger(logger *zap.Logger) MapperOption {
	return func(m *Mapper) { m.Logger = logger }
}

// NewMapper returns an empty Mapper configured by opts.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// --- package-level default mapper (used by Extract, Get, Query) ---

var defaultMapper atomic.Pointer[Mapper]

func getMapper() *Mapper {
	if m := defaultMapper.Load(); m != nil {
		return m
	}
	defaultMapper.CompareAndSwap(nil, NewMapper())
	return defaultMapper.Load()
}

// DefaultMapper returns the Mapper that ColumnsOf, ExtractWith and every
// helper built on them use for types without generated methods.
func DefaultMapper() *Mapper { return getMapper() }

// SetDefaultMapper replaces the default Mapper and returns the previous one.
// A nil m restores a fresh Mapper with no options on next use. Types with
// generated methods never consult the Mapper.
//
// Example:
//
//	// Drivers that report upper-case or quoted column names:
//	xrow.SetDefaultMapper(xrow.NewMapper(xrow.WithFold()))
func SetDefaultMapper(m *Mapper) *Mapper {
	return defaultMapper.Swap(m)
}

// Columns resolves the mapping of rt for a row with the given column names.
func (m *Mapper) Columns(rt reflect.Type, names []string) (Mapping, error) {
	d, err := m.derive(rt)
	if err != nil {
		return Mapping{}, err
	}
	return d.columns(m, names)
}

// ExtractWith scans row into v, which must be a settable value of a derived type.
func (m *Mapper) ExtractWith(v reflect.Value, mp Mapping, row Row) error {
	d, err := m.derive(v.Type())
	if err != nil {
		return err
	}
	return d.extract(v, mp, row)
}

// ---------------- Derivation & cache ----------------

type derived struct {
	rt     reflect.Type
	name   string
	whole  bool // T itself receives the single column
	fields []derivedField
	plan   *lookup.Plan
}

type derivedField struct {
	path []int // index path through inline structs
	name string
}

func (m *Mapper) derive(rt reflect.Type) (*derived, error) {
	if v, ok := m.cache.Load(rt); ok {
		return v.(*derived), nil
	}

	d := &derived{rt: rt, name: rt.String()}
	if isWhole(rt) {
		d.whole = true
	} else {
		var specs []lookup.Field
		if err := m.walk(derefPtr(rt), nil, false, &d.fields, &specs); err != nil {
			return nil, fmt.Errorf("xrow: %s: %w", rt, err)
		}
		plan, err := lookup.Build(specs)
		if err != nil {
			return nil, fmt.Errorf("xrow: %s: %w", rt, err)
		}
		d.plan = plan
	}

	if m.Logger != nil {
		fields := make([]string, len(d.fields))
		for i, f := range d.fields {
			fields[i] = f.name
		}
		groups := 0
		if d.plan != nil {
			groups = len(d.plan.Groups())
		}
		m.Logger.Debug("xrow: derived extractor",
			zap.Stringer("type", rt),
			zap.Bool("whole", d.whole),
			zap.Strings("fields", fields),
			zap.Int("groups", groups),
		)
	}

	v, _ := m.cache.LoadOrStore(rt, d)
	return v.(*derived), nil
}

// walk collects the exported fields of t, flattening inline structs.
func (m *Mapper) walk(t reflect.Type, base []int, inline bool, out *[]derivedField, specs *[]lookup.Field) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() && !sf.Anonymous {
			continue
		}
		raw, tagged := sf.Tag.Lookup(tag.Key)
		spec, err := tag.Parse(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}
		if spec.Skip {
			continue
		}
		path := append(append([]int(nil), base...), i)
		ft := sf.Type

		if spec.Inline || (sf.Anonymous && (inline || !tagged)) {
			st := derefPtr(ft)
			if st.Kind() == reflect.Struct && !isWhole(st) {
				if !sf.IsExported() && ft.Kind() == reflect.Pointer {
					// Unexported embedded pointers cannot be allocated.
					continue
				}
				if err := m.walk(st, path, spec.Inline, out, specs); err != nil {
					return err
				}
				continue
			}
			if spec.Inline {
				return fmt.Errorf("field %s: %w: inline requires a struct, got %s", sf.Name, ErrInvalidTag, ft)
			}
		}
		if !sf.IsExported() {
			continue
		}

		f := lookup.Field{Name: spec.Name, Index: spec.Index}
		if f.Index < 0 && f.Name == "" {
			f.Name = tag.ColumnName(sf.Name)
		}
		if m.Fold {
			f.Name = toLowerAscii(f.Name)
		}
		*out = append(*out, derivedField{path: path, name: sf.Name})
		*specs = append(*specs, f)
	}
	return nil
}

func (d *derived) columns(m *Mapper, names []string) (Mapping, error) {
	if len(names) == 0 {
		return Mapping{}, ErrNoColumns
	}
	if d.whole {
		if len(names) != 1 {
			return Mapping{}, fmt.Errorf("xrow: scanning %s requires exactly 1 column; got %d", d.rt, len(names))
		}
		return NewMapping(1, 0), nil
	}
	if m.Fold {
		folded := make([]string, len(names))
		for i, c := range names {
			folded[i] = normalizeColAscii(c)
		}
		names = folded
	}
	idx, err := d.plan.Resolve(names)
	if err != nil {
		var me *lookup.MissingError
		var re *lookup.RangeError
		switch {
		case errors.As(err, &me):
			return Mapping{}, MissingColumn(d.name, me.Column)
		case errors.As(err, &re):
			return Mapping{}, ColumnOutOfRange(d.name, re.Index, re.Width)
		}
		return Mapping{}, err
	}
	return NewMapping(len(names), idx...), nil
}

func (d *derived) extract(v reflect.Value, mp Mapping, row Row) error {
	if d.whole {
		if err := mp.Check(d.name, 1); err != nil {
			return err
		}
		dest := mp.Dest()
		dest.Bind(0, v.Addr().Interface())
		return dest.Scan(row)
	}
	if err := mp.Check(d.name, len(d.fields)); err != nil {
		return err
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	dest := mp.Dest()
	for i, f := range d.fields {
		dest.Bind(i, fieldByPathAlloc(v, f.path).Addr().Interface())
	}
	return dest.Scan(row)
}

// ---------------- Type helpers ----------------

var (
	scannerType = reflect.TypeFor[sql.Scanner]()
	timeType    = reflect.TypeFor[time.Time]()
)

// isWhole reports whether values of t are scanned from a single column
// rather than field by field.
func isWhole(t reflect.Type) bool {
	if scansItself(t) {
		return true
	}
	t = derefPtr(t)
	return t.Kind() != reflect.Struct || t == timeType || scansItself(t)
}

func derefPtr(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// scansItself reports whether *t is a sql.Scanner through a Scan method of
// t's own. A Scan promoted from an embedded field does not count, so a struct
// embedding sql.NullString is still mapped field by field.
//
// A struct that both embeds a Scanner and declares Scan is indistinguishable
// from the promoted case and is mapped field by field too.
func scansItself(t reflect.Type) bool {
	if !reflect.PointerTo(t).Implements(scannerType) {
		return false
	}
	if t.Kind() != reflect.Struct {
		return true
	}
	for i := 0; i < t.NumField(); i++ {
		ft := t.Field(i)
		if !ft.Anonymous {
			continue
		}
		if ft.Type.Implements(scannerType) || reflect.PointerTo(ft.Type).Implements(scannerType) {
			return false
		}
	}
	return true
}

// fieldByPathAlloc walks fpath, allocating nil pointers to parent structs so
// the final field is addressable.
func fieldByPathAlloc(root reflect.Value, fpath []int) reflect.Value {
	v := root
	for _, i := range fpath {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v
}

// ---------------- Column normalization (ASCII fast-path) ----------------

func normalizeColAscii(s string) string {
	if l := len(s); l >= 2 {
		switch s[0] {
		case '"':
			if s[l-1] == '"' {
				s = s[1 : l-1]
			}
		case '`':
			if s[l-1] == '`' {
				s = s[1 : l-1]
			}
		case '[':
			if s[l-1] == ']' {
				s = s[1 : l-1]
			}
		}
	}
	return toLowerAscii(s)
}

func toLowerAscii(s string) string {
	var need bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			need = true
			break
		}
	}
	if !need {
		return s
	}
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c = c + ('a' - 'A')
		}
		b[i] = c
	}
	return string(b)
}
