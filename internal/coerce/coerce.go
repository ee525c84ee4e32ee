// Package coerce converts raw attribute values into the canonical Go type of
// a field kind: string, int64, float64 or bool.
//
// Strict mode only accepts values whose meaning is unambiguous for the target
// kind. Lenient mode falls back to best-effort conversion, stringifying any
// scalar and truncating fractional numbers.
package coerce

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Mode selects how forgiving a conversion is.
type Mode int8

const (
	Strict Mode = iota
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// String returns v as a string.
func String(v any, mode Mode) (any, error) {
	v = indirect(v)
	if v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	if mode == Strict {
		return nil, fmt.Errorf("cannot use %T as string", v)
	}
	if f, ok := v.(float64); ok {
		return formatFloat(f), nil
	}
	if f, ok := v.(float32); ok {
		return formatFloat(float64(f)), nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v), nil
	}
	return s, nil
}

// Integer returns v as an int64.
func Integer(v any, mode Mode) (any, error) {
	v = indirect(v)
	if v == nil {
		return nil, nil
	}
	if mode == Lenient {
		return lenientInteger(v)
	}

	switch t := v.(type) {
	case bool:
		return nil, fmt.Errorf("cannot use bool as integer")
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as integer", t)
		}
		return n, nil
	case float32:
		return wholeFloat(float64(t))
	case float64:
		return wholeFloat(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as integer", t.String())
		}
		return wholeFloat(f)
	}

	if n, ok, err := integerKind(v); ok {
		return n, err
	}
	return nil, fmt.Errorf("cannot use %T as integer", v)
}

// lenientInteger truncates fractional numbers toward zero. Values outside
// the int64 range still fail.
func lenientInteger(v any) (any, error) {
	switch t := v.(type) {
	case float32:
		return truncFloat(float64(t))
	case float64:
		return truncFloat(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		if f, err := t.Float64(); err == nil {
			return truncFloat(f)
		}
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return truncFloat(f)
		}
	}

	if n, ok, err := integerKind(v); ok {
		return n, err
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %T to integer: %w", v, err)
	}
	return n, nil
}

// integerKind converts values whose underlying kind is a Go integer,
// named types included. ok is false for any other kind.
func integerKind(v any) (n int64, ok bool, err error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, true, fmt.Errorf("value %d overflows int64", u)
		}
		return int64(u), true, nil
	}
	return 0, false, nil
}

// Float returns v as a float64.
func Float(v any, mode Mode) (any, error) {
	v = indirect(v)
	if v == nil {
		return nil, nil
	}
	if mode == Lenient {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %T to float: %w", v, err)
		}
		return f, nil
	}

	switch t := v.(type) {
	case bool:
		return nil, fmt.Errorf("cannot use bool as float")
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float", t)
		}
		return f, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float", t.String())
		}
		return f, nil
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return reflect.ValueOf(v).Convert(reflect.TypeOf(float64(0))).Float(), nil
	}
	return nil, fmt.Errorf("cannot use %T as float", v)
}

var (
	truthy = map[string]bool{"true": true, "t": true, "yes": true, "y": true, "on": true, "1": true}
	falsy  = map[string]bool{"false": true, "f": true, "no": true, "n": true, "off": true, "0": true, "": true}
)

// Boolean returns the truthiness of v.
func Boolean(v any, mode Mode) (any, error) {
	v = indirect(v)
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		key := strings.ToLower(strings.TrimSpace(s))
		switch {
		case truthy[key]:
			return true, nil
		case falsy[key]:
			return false, nil
		case mode == Lenient:
			return true, nil
		default:
			return nil, fmt.Errorf("cannot parse %q as boolean", s)
		}
	}
	b, err := cast.ToBoolE(v)
	if err == nil {
		return b, nil
	}
	if mode == Strict {
		return nil, fmt.Errorf("cannot use %T as boolean", v)
	}
	return !reflect.ValueOf(v).IsZero(), nil
}

func indirect(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

func isWhole(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0)
}

// inInt64Range reports whether f truncates to a representable int64.
// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
func inInt64Range(f float64) bool {
	return f >= -0x1p63 && f < 0x1p63
}

func wholeFloat(f float64) (any, error) {
	if !isWhole(f) || !inInt64Range(f) {
		return nil, fmt.Errorf("cannot use %v as integer without losing precision", f)
	}
	return int64(f), nil
}

func truncFloat(f float64) (any, error) {
	if math.IsNaN(f) || !inInt64Range(f) {
		return nil, fmt.Errorf("value %v overflows int64", f)
	}
	return int64(f), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
