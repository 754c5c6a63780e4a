package xrow

import (
	"database/sql"
	"errors"
	"strconv"
	"testing"
	"time"
)

type myInt int16
type myStr string

func TestConvertAssign(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()

	var s string
	if err := convertAssign(&s, []byte("hi")); err != nil || s != "hi" {
		t.Fatalf("string from bytes: %q %v", s, err)
	}
	if err := convertAssign(&s, int64(12)); err != nil || s != "12" {
		t.Fatalf("string from int64: %q %v", s, err)
	}
	if err := convertAssign(&s, nil); err == nil {
		t.Fatal("NULL into string should fail")
	}

	src := []byte("abc")
	var b []byte
	if err := convertAssign(&b, src); err != nil || string(b) != "abc" {
		t.Fatalf("bytes: %q %v", b, err)
	}
	src[0] = 'x'
	if string(b) != "abc" {
		t.Fatal("bytes must be copied")
	}

	var raw sql.RawBytes
	if err := convertAssign(&raw, int64(7)); err != nil || string(raw) != "7" {
		t.Fatalf("raw bytes: %q %v", raw, err)
	}

	var a any
	if err := convertAssign(&a, int64(3)); err != nil || a != int64(3) {
		t.Fatalf("any: %v %v", a, err)
	}

	var i32 int32
	if err := convertAssign(&i32, int64(-5)); err != nil || i32 != -5 {
		t.Fatalf("int32: %d %v", i32, err)
	}
	if err := convertAssign(&i32, "42"); err != nil || i32 != 42 {
		t.Fatalf("int32 from string: %d %v", i32, err)
	}
	var i8 int8
	if err := convertAssign(&i8, int64(300)); !errors.Is(err, strconv.ErrRange) {
		t.Fatalf("int8 overflow: %v", err)
	}
	var u8 uint8
	if err := convertAssign(&u8, int64(-1)); err == nil {
		t.Fatal("negative into uint8 should fail")
	}
	var f32 float32
	if err := convertAssign(&f32, float64(1.25)); err != nil || f32 != 1.25 {
		t.Fatalf("float32: %v %v", f32, err)
	}
	var ok bool
	if err := convertAssign(&ok, int64(1)); err != nil || !ok {
		t.Fatalf("bool: %v %v", ok, err)
	}
	var ts time.Time
	if err := convertAssign(&ts, now); err != nil || !ts.Equal(now) {
		t.Fatalf("time: %v %v", ts, err)
	}

	var mi myInt
	if err := convertAssign(&mi, int64(9)); err != nil || mi != 9 {
		t.Fatalf("named int: %v %v", mi, err)
	}
	var ms myStr
	if err := convertAssign(&ms, []byte("z")); err != nil || ms != "z" {
		t.Fatalf("named string: %v %v", ms, err)
	}

	var p *int64
	if err := convertAssign(&p, int64(4)); err != nil || p == nil || *p != 4 {
		t.Fatalf("pointer: %v %v", p, err)
	}
	if err := convertAssign(&p, nil); err != nil || p != nil {
		t.Fatalf("pointer NULL: %v %v", p, err)
	}

	var ns sql.NullString
	if err := convertAssign(&ns, "v"); err != nil || !ns.Valid || ns.String != "v" {
		t.Fatalf("scanner: %+v %v", ns, err)
	}

	if err := convertAssign(i32, int64(1)); err == nil {
		t.Fatal("non-pointer destination should fail")
	}
	var ch chan int
	if err := convertAssign(&ch, int64(1)); err == nil {
		t.Fatal("unsupported destination should fail")
	}
}

func TestDriverValue(t *testing.T) {
	s := "x"
	ps := &s
	var nilStr *string
	ni := sql.NullInt64{Int64: 3, Valid: true}
	var iface any = int32(8)

	cases := []struct {
		ptr  any
		want any
	}{
		{&s, "x"},
		{&ps, "x"},
		{&nilStr, nil},
		{&ni, int64(3)},
		{&iface, int64(8)},
		{ptrTo(int16(2)), int64(2)},
		{ptrTo(uint32(2)), uint64(2)},
		{ptrTo(float32(0.5)), float64(0.5)},
		{ptrTo(true), true},
		{ptrTo([]byte("b")), []byte("b")},
		{ptrTo(sql.RawBytes("r")), []byte("r")},
	}
	for i, tc := range cases {
		got, err := driverValue(tc.ptr)
		if err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		if b, ok := tc.want.([]byte); ok {
			if gb, _ := got.([]byte); string(gb) != string(b) {
				t.Fatalf("%d: got %#v want %#v", i, got, tc.want)
			}
			continue
		}
		if got != tc.want {
			t.Fatalf("%d: got %#v want %#v", i, got, tc.want)
		}
	}
}

func ptrTo[T any](v T) *T { return &v }
