package gen

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/go-mizu/xrow/internal/lookup"
)

// ImportPath is the package the generated code calls into.
const ImportPath = "github.com/go-mizu/xrow"

const header = "// Code generated by xrowgen. DO NOT EDIT.\n"

var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// Render returns the formatted generated file for pkg. filename is used
// for error positions only.
func Render(pkg *Package, filename string) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\npackage %s\n\nimport %q\n", header, pkg.Name, ImportPath)
	for _, t := range pkg.Types {
		writeColumns(&b, t)
		writeExtract(&b, t)
	}
	out, err := imports.Process(filename, b.Bytes(), formatOptions)
	if err != nil {
		return nil, fmt.Errorf("gen: format %s: %w", filename, err)
	}
	return out, nil
}

func writeColumns(b *bytes.Buffer, t *Type) {
	typ := strconv.Quote(t.Name)
	fmt.Fprintf(b, "\n// Columns implements xrow.Columner.\nfunc (*%s) Columns(names []string) (xrow.Mapping, error) {\n", t.Receiver())
	b.WriteString("if len(names) == 0 {\nreturn xrow.Mapping{}, xrow.ErrNoColumns\n}\n")

	slots := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		slots[i] = strconv.Itoa(f.Column.Index)
	}
	fmt.Fprintf(b, "idx := [%d]int{%s}\n", len(t.Fields), strings.Join(slots, ", "))
	for _, f := range t.Fields {
		if n := f.Column.Index; n >= 0 {
			fmt.Fprintf(b, "if len(names) <= %d {\nreturn xrow.Mapping{}, xrow.ColumnOutOfRange(%s, %d, len(names))\n}\n", n, typ, n)
		}
	}

	p := t.Plan
	repeat := make(map[int]bool, len(p.Repeats()))
	for _, r := range p.Repeats() {
		repeat[r.Field] = true
	}
	switch p.Unique() {
	case 0:
	case 1:
		fmt.Fprintf(b, "for i, name := range names {\nif name == %q {\n", p.Single())
		first := -1
		for i, f := range t.Fields {
			if f.Column.Index < 0 {
				fmt.Fprintf(b, "idx[%d] = i\n", i)
				if first < 0 {
					first = i
				}
			}
		}
		b.WriteString("break\n}\n}\n")
		fmt.Fprintf(b, "if idx[%d] < 0 {\nreturn xrow.Mapping{}, xrow.MissingColumn(%s, %q)\n}\n", first, typ, p.Single())
	default:
		fmt.Fprintf(b, "todo := %d\nfor i, name := range names {\nf := -1\nswitch len(name) {\n", p.Unique())
		for _, g := range p.Groups() {
			writeGroup(b, g)
		}
		b.WriteString("}\nif f < 0 || idx[f] >= 0 {\ncontinue\n}\nidx[f] = i\nif todo--; todo == 0 {\nbreak\n}\n}\n")
		for i, f := range t.Fields {
			if f.Column.Index < 0 && !repeat[i] {
				fmt.Fprintf(b, "if idx[%d] < 0 {\nreturn xrow.Mapping{}, xrow.MissingColumn(%s, %q)\n}\n", i, typ, f.Column.Name)
			}
		}
		for _, r := range p.Repeats() {
			fmt.Fprintf(b, "idx[%d] = idx[%d]\n", r.Field, r.Of)
		}
	}
	b.WriteString("return xrow.NewMapping(len(names), idx[:]...), nil\n}\n")
}

func writeGroup(b *bytes.Buffer, g lookup.Group) {
	fmt.Fprintf(b, "case %d:\n", g.Len)
	switch {
	case len(g.Entries) == 1:
		e := g.Entries[0]
		fmt.Fprintf(b, "if name == %q {\nf = %d\n}\n", e.Name, e.Field)
	case g.Width == 0:
		b.WriteString("switch name {\n")
		for _, e := range g.Entries {
			fmt.Fprintf(b, "case %q:\nf = %d\n", e.Name, e.Field)
		}
		b.WriteString("}\n")
	default:
		fmt.Fprintf(b, "switch %s {\n", keyExpr(g.Offset, g.Width))
		for _, e := range g.Entries {
			fmt.Fprintf(b, "case %#x:\nif name == %q {\nf = %d\n}\n", e.Key, e.Name, e.Field)
		}
		b.WriteString("}\n")
	}
}

// keyExpr reads width bytes of name at off as a little-endian integer, the
// same value lookup.Key computes.
func keyExpr(off, width int) string {
	if width == 1 {
		return fmt.Sprintf("name[%d]", off)
	}
	terms := make([]string, width)
	for i := range terms {
		terms[i] = fmt.Sprintf("uint64(name[%d])", off+i)
		if i > 0 {
			terms[i] += fmt.Sprintf("<<%d", 8*i)
		}
	}
	return strings.Join(terms, " | ")
}

func writeExtract(b *bytes.Buffer, t *Type) {
	fmt.Fprintf(b, "\n// ExtractWith implements xrow.Extracter.\nfunc (x *%s) ExtractWith(m xrow.Mapping, row xrow.Row) error {\n", t.Receiver())
	fmt.Fprintf(b, "if err := m.Check(%q, %d); err != nil {\nreturn err\n}\n", t.Name, len(t.Fields))
	done := make(map[string]bool)
	for _, f := range t.Fields {
		for _, a := range f.Allocs {
			if done[a.Path] {
				continue
			}
			done[a.Path] = true
			fmt.Fprintf(b, "if x.%s == nil {\nx.%s = new(%s)\n}\n", a.Path, a.Path, a.Type)
		}
	}
	b.WriteString("d := m.Dest()\n")
	for i, f := range t.Fields {
		fmt.Fprintf(b, "d.Bind(%d, &x.%s)\n", i, f.Path)
	}
	b.WriteString("return d.Scan(row)\n}\n")
}
