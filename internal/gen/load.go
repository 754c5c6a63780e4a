package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/go-mizu/xrow/internal/lookup"
	"github.com/go-mizu/xrow/internal/tag"
)

// Package is a parsed package directory and the types selected from it.
type Package struct {
	Name  string
	Dir   string
	Types []*Type
}

// Type is a struct that receives generated methods.
type Type struct {
	Name   string
	Params []string // type parameter names, in declaration order
	Fields []Field
	Plan   *lookup.Plan
}

// Receiver returns the receiver type without the star, e.g. "Page[T]".
func (t *Type) Receiver() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	return t.Name + "[" + strings.Join(t.Params, ", ") + "]"
}

// Field is a mapped field reached from the receiver.
type Field struct {
	Path   string // selector below the receiver, e.g. "Org.OrgID"
	Column lookup.Field
	Allocs []Alloc // nil struct pointers to allocate before binding
}

// Alloc is a pointer to an inline struct.
type Alloc struct {
	Path string
	Type string
}

type decl struct {
	spec    *ast.TypeSpec
	st      *ast.StructType
	marked  bool
	scanner bool // has a Scan method, so it reads a single column
}

type loader struct {
	fset  *token.FileSet
	decls map[string]*decl
	order []string
}

// Load parses the non-test Go files of cfg.Dir, skipping the output file,
// and builds every type marked with Directive or listed in cfg.Types.
func Load(cfg Config) (*Package, error) {
	cfg = cfg.withDefaults()
	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return nil, err
	}
	l := &loader{fset: token.NewFileSet(), decls: make(map[string]*decl)}
	pkg := &Package{Dir: cfg.Dir}
	skip := filepath.Base(cfg.Output)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == skip {
			continue
		}
		f, err := parser.ParseFile(l.fset, filepath.Join(cfg.Dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		switch {
		case pkg.Name == "":
			pkg.Name = f.Name.Name
		case f.Name.Name != pkg.Name:
			return nil, fmt.Errorf("gen: %s: found packages %s and %s", cfg.Dir, pkg.Name, f.Name.Name)
		}
		l.collect(f)
	}
	if pkg.Name == "" {
		return nil, fmt.Errorf("gen: no Go files in %s", cfg.Dir)
	}

	for _, name := range cfg.Types {
		d, ok := l.decls[name]
		if !ok || d.spec == nil {
			return nil, fmt.Errorf("gen: type %s not found in %s", name, cfg.Dir)
		}
		d.marked = true
	}
	for _, name := range l.order {
		d := l.decls[name]
		if !d.marked {
			continue
		}
		if d.st == nil {
			return nil, fmt.Errorf("gen: %s is not a struct type", name)
		}
		t, err := l.build(d)
		if err != nil {
			return nil, fmt.Errorf("gen: %s: %w", name, err)
		}
		pkg.Types = append(pkg.Types, t)
	}
	return pkg, nil
}

func (l *loader) get(name string) *decl {
	d, ok := l.decls[name]
	if !ok {
		d = &decl{}
		l.decls[name] = d
	}
	return d
}

func (l *loader) collect(f *ast.File) {
	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, s := range d.Specs {
				ts := s.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				x := l.get(ts.Name.Name)
				x.spec = ts
				x.st, _ = ts.Type.(*ast.StructType)
				x.marked = x.marked || hasDirective(doc)
				l.order = append(l.order, ts.Name.Name)
			}
		case *ast.FuncDecl:
			if d.Recv == nil || d.Name.Name != "Scan" || len(d.Recv.List) == 0 {
				continue
			}
			if name := baseName(d.Recv.List[0].Type); name != "" {
				l.get(name).scanner = true
			}
		}
	}
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		text := strings.TrimSpace(c.Text)
		if text == Directive || strings.HasPrefix(text, Directive+" ") {
			return true
		}
	}
	return false
}

// baseName returns the type name of T, *T, T[A] and pkg.T expressions.
func baseName(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return baseName(e.X)
	case *ast.IndexExpr:
		return baseName(e.X)
	case *ast.IndexListExpr:
		return baseName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	}
	return ""
}

func (l *loader) build(d *decl) (*Type, error) {
	t := &Type{Name: d.spec.Name.Name}
	if tp := d.spec.TypeParams; tp != nil {
		for _, f := range tp.List {
			for _, n := range f.Names {
				t.Params = append(t.Params, n.Name)
			}
		}
	}
	if err := l.walk(t, d.st, nil, "", nil, false, []string{t.Name}); err != nil {
		return nil, err
	}
	cols := make([]lookup.Field, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Column
	}
	plan, err := lookup.Build(cols)
	if err != nil {
		return nil, err
	}
	t.Plan = plan
	return t, nil
}

// walk follows the field rules of the reflection deriver: exported fields,
// `column` tags, and flattening of inline and untagged embedded structs.
func (l *loader) walk(t *Type, st *ast.StructType, subst map[string]string, prefix string, allocs []Alloc, inline bool, stack []string) error {
	for _, f := range st.Fields.List {
		raw, tagged := "", false
		if f.Tag != nil {
			s, err := strconv.Unquote(f.Tag.Value)
			if err != nil {
				return err
			}
			raw, tagged = reflect.StructTag(s).Lookup(tag.Key)
		}
		spec, err := tag.Parse(raw)
		if err != nil {
			return fmt.Errorf("field %s%s: %w", prefix, fieldName(f), err)
		}
		if spec.Skip {
			continue
		}

		anonymous := len(f.Names) == 0
		names := f.Names
		if anonymous {
			names = []*ast.Ident{ast.NewIdent(baseName(f.Type))}
		}
		for _, id := range names {
			exported := ast.IsExported(id.Name)
			if !exported && !anonymous {
				continue
			}
			path := prefix + id.Name

			if spec.Inline || (anonymous && (inline || !tagged)) {
				ok, err := l.flatten(t, f.Type, subst, path, allocs, spec.Inline, exported, stack)
				if err != nil {
					return err
				}
				if ok {
					continue
				}
				if spec.Inline {
					return fmt.Errorf("field %s: %w: inline requires a struct declared in this package", path, tag.ErrInvalid)
				}
				if foreign(f.Type) && !tagged {
					return fmt.Errorf("field %s: embedded type from another package needs a `column` tag", path)
				}
			}
			if !exported {
				continue
			}

			col := lookup.Field{Name: spec.Name, Index: spec.Index}
			if col.Index < 0 && col.Name == "" {
				col.Name = tag.ColumnName(id.Name)
			}
			t.Fields = append(t.Fields, Field{Path: path, Column: col, Allocs: slices.Clone(allocs)})
		}
	}
	return nil
}

// flatten walks the fields of the struct typ names, when it is a struct of
// this package that does not scan itself. It reports whether typ was such a
// struct.
func (l *loader) flatten(t *Type, typ ast.Expr, subst map[string]string, path string, allocs []Alloc, inline, exported bool, stack []string) (bool, error) {
	elem, ptr := typ, false
	if s, ok := typ.(*ast.StarExpr); ok {
		elem, ptr = s.X, true
	}
	var (
		name string
		args []ast.Expr
	)
	switch e := elem.(type) {
	case *ast.Ident:
		name = e.Name
	case *ast.IndexExpr:
		name, args = baseName(e.X), []ast.Expr{e.Index}
	case *ast.IndexListExpr:
		name, args = baseName(e.X), e.Indices
	default:
		return false, nil
	}
	if _, param := subst[name]; param {
		return false, nil
	}
	if len(stack) == 1 && slices.Contains(t.Params, name) {
		return false, nil
	}
	d, ok := l.decls[name]
	if !ok || d.st == nil || d.scanner {
		return false, nil
	}
	if ptr && !exported {
		// Unexported embedded pointers cannot be allocated.
		return true, nil
	}
	if slices.Contains(stack, name) {
		return false, fmt.Errorf("field %s: recursive inline of %s", path, name)
	}

	inner := map[string]string{}
	if tp := d.spec.TypeParams; tp != nil {
		var params []string
		for _, f := range tp.List {
			for _, n := range f.Names {
				params = append(params, n.Name)
			}
		}
		if len(params) != len(args) {
			return false, fmt.Errorf("field %s: %s needs %d type arguments", path, name, len(params))
		}
		for i, p := range params {
			s, err := l.exprString(args[i], subst)
			if err != nil {
				return false, err
			}
			inner[p] = s
		}
	}
	if ptr {
		s, err := l.exprString(elem, subst)
		if err != nil {
			return false, err
		}
		allocs = append(slices.Clone(allocs), Alloc{Path: path, Type: s})
	}
	return true, l.walk(t, d.st, inner, path+".", allocs, inline, append(slices.Clone(stack), name))
}

func foreign(e ast.Expr) bool {
	if s, ok := e.(*ast.StarExpr); ok {
		e = s.X
	}
	switch x := e.(type) {
	case *ast.IndexExpr:
		e = x.X
	case *ast.IndexListExpr:
		e = x.X
	}
	_, ok := e.(*ast.SelectorExpr)
	return ok
}

func fieldName(f *ast.Field) string {
	if len(f.Names) > 0 {
		return f.Names[0].Name
	}
	return baseName(f.Type)
}

// exprString prints e as seen from the receiver, replacing the type
// parameters of an instantiated inline struct with their arguments.
func (l *loader) exprString(e ast.Expr, subst map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := format.Node(&buf, l.fset, e); err != nil {
		return "", err
	}
	if len(subst) == 0 {
		return buf.String(), nil
	}
	fset := token.NewFileSet()
	cp, err := parser.ParseExprFrom(fset, "", buf.Bytes(), 0)
	if err != nil {
		return "", err
	}
	cp = astutil.Apply(cp, func(c *astutil.Cursor) bool {
		id, ok := c.Node().(*ast.Ident)
		if !ok {
			return true
		}
		if _, sel := c.Parent().(*ast.SelectorExpr); sel && c.Name() == "Sel" {
			return true
		}
		if s, ok := subst[id.Name]; ok {
			c.Replace(ast.NewIdent(s))
		}
		return true
	}, nil).(ast.Expr)
	buf.Reset()
	if err := format.Node(&buf, fset, cp); err != nil {
		return "", err
	}
	return buf.String(), nil
}
