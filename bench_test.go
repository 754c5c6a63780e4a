package xrow_test

import (
	"fmt"
	"testing"

	"github.com/go-mizu/xrow"
	"github.com/go-mizu/xrow/internal/testmodels"
)

var benchColumns = []string{"pad_a", "email_address", "org_name", "pad_b", "id", "name", "org_id"}

func benchRecords(n int) []xrow.Record {
	recs := make([]xrow.Record, n)
	for i := range recs {
		recs[i] = xrow.NewRecord(benchColumns,
			"a", fmt.Sprintf("u%d@x.test", i), "acme", "b", int64(i), fmt.Sprintf("u%d", i), int64(1))
	}
	return recs
}

// naiveUser searches every column name for every field on every row.
func naiveUser(r xrow.Record) (testmodels.User, error) {
	u := testmodels.User{Org: new(testmodels.Org)}
	cols, _ := r.Columns()
	get := func(name string) (any, error) {
		for i, c := range cols {
			if c == name {
				return r.Values()[i], nil
			}
		}
		return nil, fmt.Errorf("no column %q", name)
	}
	for _, f := range []struct {
		name string
		set  func(any)
	}{
		{"id", func(v any) { u.ID = v.(int64) }},
		{"name", func(v any) { u.Name = v.(string) }},
		{"email_address", func(v any) { u.Email = v.(string) }},
		{"org_id", func(v any) { u.Org.OrgID = v.(int64) }},
		{"org_name", func(v any) { u.Org.OrgName = v.(string) }},
	} {
		v, err := get(f.name)
		if err != nil {
			return u, err
		}
		f.set(v)
	}
	return u, nil
}

func BenchmarkExtract(b *testing.B) {
	recs := benchRecords(1000)

	b.Run("naive", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			for _, r := range recs {
				if _, err := naiveUser(r); err != nil {
					b.Fatal(err)
				}
			}
		}
	})
	b.Run("once", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			for _, r := range recs {
				if _, err := xrow.ExtractOnce[testmodels.User](r); err != nil {
					b.Fatal(err)
				}
			}
		}
	})
	b.Run("generated", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			var m xrow.Mapping
			for _, r := range recs {
				if _, err := xrow.Extract[testmodels.User](&m, r); err != nil {
					b.Fatal(err)
				}
			}
		}
	})
	b.Run("derived", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			var m xrow.Mapping
			for _, r := range recs {
				if _, err := xrow.Extract[derivedUser](&m, r); err != nil {
					b.Fatal(err)
				}
			}
		}
	})
}

func BenchmarkColumns(b *testing.B) {
	b.Run("generated", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := xrow.ColumnsOf[testmodels.User](benchColumns); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("derived", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := xrow.ColumnsOf[derivedUser](benchColumns); err != nil {
				b.Fatal(err)
			}
		}
	})
}
