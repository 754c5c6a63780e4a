package xrow

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var errNilPtr = errors.New("xrow: destination pointer is nil")

// convertAssign stores the driver value src into dest. It follows the
// conversions database/sql performs for Rows.Scan, for values that did not
// come through a driver: Records and fields sharing a column.
func convertAssign(dest, src any) error {
	switch d := dest.(type) {
	case *any:
		if d == nil {
			return errNilPtr
		}
		if b, ok := src.([]byte); ok {
			src = bytes.Clone(b)
		}
		*d = src
		return nil
	case *string:
		if d == nil {
			return errNilPtr
		}
		switch s := src.(type) {
		case string:
			*d = s
			return nil
		case []byte:
			*d = string(s)
			return nil
		case nil:
			return fmt.Errorf("converting NULL to %T is unsupported", *d)
		}
		*d = asString(src)
		return nil
	case *[]byte:
		if d == nil {
			return errNilPtr
		}
		switch s := src.(type) {
		case []byte:
			*d = bytes.Clone(s)
		case string:
			*d = []byte(s)
		case nil:
			*d = nil
		default:
			*d = []byte(asString(src))
		}
		return nil
	case *sql.RawBytes:
		if d == nil {
			return errNilPtr
		}
		switch s := src.(type) {
		case []byte:
			*d = s
		case string:
			*d = sql.RawBytes(s)
		case nil:
			*d = nil
		default:
			*d = sql.RawBytes(asString(src))
		}
		return nil
	case *time.Time:
		if d == nil {
			return errNilPtr
		}
		if t, ok := src.(time.Time); ok {
			*d = t
			return nil
		}
	}

	if sc, ok := dest.(sql.Scanner); ok {
		return sc.Scan(src)
	}

	dpv := reflect.ValueOf(dest)
	if dpv.Kind() != reflect.Pointer {
		return fmt.Errorf("xrow: destination not a pointer: %T", dest)
	}
	if dpv.IsNil() {
		return errNilPtr
	}
	dv := dpv.Elem()

	if src == nil {
		switch dv.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
			dv.SetZero()
			return nil
		}
		return fmt.Errorf("converting NULL to %s is unsupported", dv.Type())
	}

	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(dv.Type()) {
		if b, ok := src.([]byte); ok {
			sv = reflect.ValueOf(bytes.Clone(b))
		}
		dv.Set(sv)
		return nil
	}

	// Nullable destination: allocate and convert into the element.
	if dv.Kind() == reflect.Pointer {
		nv := reflect.New(dv.Type().Elem())
		if err := convertAssign(nv.Interface(), src); err != nil {
			return err
		}
		dv.Set(nv)
		return nil
	}

	switch dv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s := asString(src)
		i, err := strconv.ParseInt(s, 10, dv.Type().Bits())
		if err != nil {
			return fmt.Errorf("converting driver.Value type %T (%q) to a %s: %w", src, s, dv.Kind(), numError(err))
		}
		dv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s := asString(src)
		u, err := strconv.ParseUint(s, 10, dv.Type().Bits())
		if err != nil {
			return fmt.Errorf("converting driver.Value type %T (%q) to a %s: %w", src, s, dv.Kind(), numError(err))
		}
		dv.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		s := asString(src)
		f, err := strconv.ParseFloat(s, dv.Type().Bits())
		if err != nil {
			return fmt.Errorf("converting driver.Value type %T (%q) to a %s: %w", src, s, dv.Kind(), numError(err))
		}
		dv.SetFloat(f)
		return nil
	case reflect.Bool:
		b, err := driver.Bool.ConvertValue(src)
		if err != nil {
			return fmt.Errorf("converting driver.Value type %T to a bool: %w", src, err)
		}
		dv.SetBool(b.(bool))
		return nil
	case reflect.String:
		switch s := src.(type) {
		case string:
			dv.SetString(s)
			return nil
		case []byte:
			dv.SetString(string(s))
			return nil
		}
		dv.SetString(asString(src))
		return nil
	case reflect.Slice:
		if dv.Type().Elem().Kind() == reflect.Uint8 {
			switch s := src.(type) {
			case []byte:
				dv.SetBytes(bytes.Clone(s))
				return nil
			case string:
				dv.SetBytes([]byte(s))
				return nil
			}
		}
	}

	if sv.Type().ConvertibleTo(dv.Type()) && sv.Kind() == dv.Kind() {
		dv.Set(sv.Convert(dv.Type()))
		return nil
	}
	return fmt.Errorf("xrow: unsupported conversion, storing driver.Value type %T into type %T", src, dest)
}

func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

func asString(src any) string {
	switch v := src.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	}
	return fmt.Sprintf("%v", src)
}

var valuerType = reflect.TypeFor[driver.Valuer]()

// driverValue reads the value already scanned into ptr back as a driver
// value, so it can be converted into another field.
func driverValue(ptr any) (any, error) {
	switch p := ptr.(type) {
	case *sql.RawBytes:
		return []byte(*p), nil
	case driver.Valuer:
		return p.Value()
	}
	v := reflect.ValueOf(ptr).Elem()
	for {
		if v.Type().Implements(valuerType) {
			if v.Kind() == reflect.Pointer && v.IsNil() {
				return nil, nil
			}
			return v.Interface().(driver.Valuer).Value()
		}
		if v.CanAddr() && v.Addr().Type().Implements(valuerType) {
			return v.Addr().Interface().(driver.Valuer).Value()
		}
		if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
			break
		}
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		return v.String(), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Bytes(), nil
		}
	}
	return v.Interface(), nil
}
