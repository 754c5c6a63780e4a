package xrow

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"testing"
)

func TestSeq(t *testing.T) {
	type X struct {
		X int32
		Y int32
	}
	cols := []string{"y", "x"}
	rows := []Record{
		rec(cols, int64(2), int64(1)),
		rec(cols, int64(4), int64(3)),
	}
	var got []X
	for x, err := range Seq[X](slices.Values(rows)) {
		if err != nil {
			t.Fatalf("Seq: %v", err)
		}
		got = append(got, x)
	}
	if len(got) != 2 || got[0] != (X{1, 2}) || got[1] != (X{3, 4}) {
		t.Fatalf("got %+v", got)
	}
}

func TestSeq_MemoizesFirstRow(t *testing.T) {
	type X struct {
		X string
	}
	rows := []Record{
		rec([]string{"x", "y"}, "a", "b"),
		rec([]string{"y", "x"}, "x", "y"),
	}
	var got []string
	for x, err := range Seq[X](slices.Values(rows)) {
		if err != nil {
			t.Fatalf("Seq: %v", err)
		}
		got = append(got, x.X)
	}
	if !slices.Equal(got, []string{"a", "x"}) {
		t.Fatalf("got %v", got)
	}
}

func TestSeq_StopsAtError(t *testing.T) {
	type X struct {
		N int8
	}
	rows := []Record{
		rec([]string{"n"}, int64(1)),
		rec([]string{"n"}, int64(1000)),
		rec([]string{"n"}, int64(2)),
	}
	var vals []int8
	var errs int
	for x, err := range Seq[X](slices.Values(rows)) {
		if err != nil {
			errs++
			continue
		}
		vals = append(vals, x.N)
	}
	if errs != 1 || !slices.Equal(vals, []int8{1}) {
		t.Fatalf("vals %v errs %d", vals, errs)
	}
}

func TestSeq_Break(t *testing.T) {
	var n int
	for range Seq[int64](slices.Values([]Record{
		rec([]string{"n"}, int64(1)),
		rec([]string{"n"}, int64(2)),
	})) {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("n = %d", n)
	}
}

func TestRecords(t *testing.T) {
	db := serve(t, results("id", "name").
		row(int64(1), []byte("a")).
		row(int64(2), nil))

	rows, err := db.QueryContext(context.Background(), "q")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	recs, err := Records(rows)
	_ = rows.Close()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d", len(recs))
	}

	type U struct {
		ID   int64
		Name *string
	}
	var got []U
	for u, err := range Seq[U](slices.Values(recs)) {
		if err != nil {
			t.Fatalf("Seq: %v", err)
		}
		got = append(got, u)
	}
	if got[0].ID != 1 || got[0].Name == nil || *got[0].Name != "a" || got[1].ID != 2 || got[1].Name != nil {
		t.Fatalf("got %+v", got)
	}
}

func TestRecords_NextError(t *testing.T) {
	rows, err := brokenCursor(t).QueryContext(context.Background(), "q")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer func() { _ = rows.Close() }()
	if _, err := Records(rows); !errors.Is(err, errCursor) {
		t.Fatalf("expected next error, got %v", err)
	}
}

func TestRecord_Scan(t *testing.T) {
	r := rec([]string{"a", "b"}, int64(1), "x")
	var a int
	var b string
	if err := r.Scan(&a, &b); err != nil || a != 1 || b != "x" {
		t.Fatalf("scan: %d %q %v", a, b, err)
	}
	if err := r.Scan(&a); err == nil {
		t.Fatal("expected destination count error")
	}
	var n int
	err := rec([]string{"n"}, "nan").Scan(&n)
	if err == nil || !errors.Is(err, strconv.ErrSyntax) {
		t.Fatalf("want syntax error, got %v", err)
	}
	cols, err := r.Columns()
	if err != nil || !slices.Equal(cols, []string{"a", "b"}) {
		t.Fatalf("columns %v %v", cols, err)
	}
}

func TestNewRecord_PanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewRecord([]string{"a"})
}
