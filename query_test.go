package xrow

import (
	"context"
	"errors"
	"strconv"
	"testing"
)

func TestQuery_SuccessStruct_MultiRows(t *testing.T) {
	type Row struct {
		ID   int64
		Name string
	}
	db := serve(t, results("id", "name").
		row(int64(1), []byte("alice")).
		row(int64(2), []byte("bob")))

	got, err := Query[Row](context.Background(), db, "ok")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[0].Name != "alice" || got[1].ID != 2 || got[1].Name != "bob" {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestQuery_Primitive_MultiRows(t *testing.T) {
	db := serve(t, results("n").row(int64(10)).row(int64(20)).row(int64(30)))

	got, err := Query[int64](context.Background(), db, "nums")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	want := []int64{10, 20, 30}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("unexpected slice: %v", got)
	}
}

func TestQuery_Empty_NoError(t *testing.T) {
	db := serve(t, results("id"))

	got, err := Query[int64](context.Background(), db, "empty")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestQuery_QueryError(t *testing.T) {
	wantErr := errors.New("boom")
	db := failQuery(t, wantErr)

	_, err := Query[int64](context.Background(), db, "fail")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func TestQuery_NextError_SurfacedViaRowsErr(t *testing.T) {
	_, err := Query[struct {
		A int `column:"a"`
	}](context.Background(), brokenCursor(t), "ignored")
	if !errors.Is(err, errCursor) {
		t.Fatalf("expected driver next error, got %v", err)
	}
}

func TestQuery_PrimitiveTooManyColumns(t *testing.T) {
	db := serve(t, results("a", "b").row(int64(1), int64(2)))

	_, err := Query[int64](context.Background(), db, "multi")
	if err == nil {
		t.Fatal("expected error for multiple columns into primitive")
	}
}

func TestQuery_Field_CustomNamedString(t *testing.T) {
	type MyStr string
	type Row struct {
		Val MyStr `column:"val"`
	}
	db := serve(t, results("val").row("hello"))

	got, err := Query[Row](context.Background(), db, "q")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(got) != 1 || string(got[0].Val) != "hello" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestQuery_Field_Interface(t *testing.T) {
	type Row struct {
		Any any `column:"v"`
	}
	db := serve(t, results("v").row(int64(42)))

	got, err := Query[Row](context.Background(), db, "q")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len: %d", len(got))
	}
	if v, ok := got[0].Any.(int64); !ok || v != 42 {
		t.Fatalf("want interface holding int64(42), got %#v", got[0].Any)
	}
}

func TestIter_AllRows(t *testing.T) {
	db := serve(t, results("n").row(int64(1)).row(int64(2)).row(int64(3)))

	var got []int
	for n, err := range Iter[int](context.Background(), db, "q") {
		if err != nil {
			t.Fatalf("Iter error: %v", err)
		}
		got = append(got, n)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("unexpected: %v", got)
	}
	if n := db.Stats().InUse; n != 0 {
		t.Fatalf("%d connections still in use", n)
	}
}

func TestIter_EarlyBreakClosesRows(t *testing.T) {
	db := serve(t, results("n").row(int64(1)).row(int64(2)))

	for n, err := range Iter[int](context.Background(), db, "q") {
		if err != nil || n != 1 {
			t.Fatalf("first: %d %v", n, err)
		}
		break
	}
	if n := db.Stats().InUse; n != 0 {
		t.Fatalf("%d connections still in use after break", n)
	}
}

func TestIter_Errors(t *testing.T) {
	wantErr := errors.New("boom")
	db := failQuery(t, wantErr)

	var errs []error
	for _, err := range Iter[int](context.Background(), db, "q") {
		errs = append(errs, err)
	}
	if len(errs) != 1 || !errors.Is(errs[0], wantErr) {
		t.Fatalf("errs = %v", errs)
	}

	errs = errs[:0]
	for _, err := range Iter[int](context.Background(), brokenCursor(t), "q") {
		errs = append(errs, err)
	}
	if len(errs) != 1 || !errors.Is(errs[0], errCursor) {
		t.Fatalf("errs = %v", errs)
	}
}

func TestQuery_ZeroOnError(t *testing.T) {
	db := serve(t, results("n").row(int64(1)).row("x"))

	got, err := Query[int64](context.Background(), db, "q")
	if err == nil {
		t.Fatal("expected conversion error on the second row")
	}
	if got != nil {
		t.Fatalf("got %v with error, want nil", got)
	}
}

func TestQuery_SharedRows(t *testing.T) {
	set := sharedRows().row("again", int64(2), "other")
	got, err := Query[fixtureShared](context.Background(), serve(t, set), "q")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	want := []string{"first/first/second/1", "again/again/other/2"}
	for i, r := range got {
		if s := r.Name + "/" + string(r.Label) + "/" + r.Third + "/" + strconv.FormatInt(r.ID, 10); s != want[i] {
			t.Fatalf("row %d = %s, want %s", i, s, want[i])
		}
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
}
