package handler

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

var intPattern = regexp.MustCompile(`^-?\d+$`)

// Coerce converts v into a Go value of the parameter's declared type.
// Null always becomes the zero value of that type.
func Coerce(p Param, v value.Value) (reflect.Value, error) {
	return coerceType(p.Name, p.Type, v)
}

func coerceType(name string, t Type, v value.Value) (reflect.Value, error) {
	if t.Kind == TypeValue {
		return reflect.ValueOf(v), nil
	}
	if v.IsNull() {
		return reflect.Zero(t.Go), nil
	}

	base := t.base()
	out := reflect.New(base).Elem()

	switch t.Kind {
	case TypeBool:
		out.SetBool(toBool(v))

	case TypeInt:
		i, ok := toInt(v)
		if !ok || !setInt(out, i) {
			return reflect.Value{}, coercionError(ErrCoercion, name, base, v)
		}

	case TypeFloat:
		f, ok := toFloat(v)
		if !ok {
			return reflect.Value{}, coercionError(ErrCoercion, name, base, v)
		}
		out.SetFloat(f)

	case TypeString:
		s, ok := toString(v)
		if !ok {
			return reflect.Value{}, coercionError(ErrCoercion, name, base, v)
		}
		out.SetString(s)

	case TypeList:
		items := toList(v)
		out = reflect.MakeSlice(t.Go, len(items), len(items))
		for i, item := range items {
			ev, err := coerceType(name, *t.Elem, item)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}

	case TypeEnum:
		m, ok := matchEnum(base, v)
		if !ok {
			if t.Nullable {
				return reflect.Zero(t.Go), nil
			}
			return reflect.Value{}, coercionError(ErrEnum, name, base, v)
		}
		out.Set(m)

	default:
		rv := reflect.ValueOf(v.Interface())
		if !rv.Type().AssignableTo(t.Go) {
			return reflect.Value{}, fmt.Errorf("%w: parameter %q wants %s, got %s", ErrArgumentType, name, t.Go, rv.Type())
		}
		out = reflect.New(t.Go).Elem()
		out.Set(rv)
		return out, nil
	}

	if base != t.Go {
		ptr := reflect.New(base)
		ptr.Elem().Set(out)
		return ptr, nil
	}
	return out, nil
}

func coercionError(kind error, name string, t reflect.Type, v value.Value) error {
	return &CoercionError{Kind: kind, Param: name, Type: t.String(), Value: v}
}

// toBool follows the usual truthy and falsy spellings. Numbers are true
// only when they equal 1; anything unrecognised is false.
func toBool(v value.Value) bool {
	switch v.Kind() {
	case value.KindBool:
		b, _ := v.AsBool()
		return b
	case value.KindInt:
		i, _ := v.AsInt()
		return i == 1
	case value.KindFloat:
		f, _ := v.AsFloat()
		return f == 1
	case value.KindString:
		s, _ := v.AsString()
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "on", "yes":
			return true
		}
	}
	return false
}

func toInt(v value.Value) (int64, bool) {
	switch v.Kind() {
	case value.KindInt:
		return v.AsInt()
	case value.KindFloat:
		f, _ := v.AsFloat()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case value.KindString:
		s, _ := v.AsString()
		if !intPattern.MatchString(s) {
			return 0, false
		}
		i, err := strconv.ParseInt(s, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func setInt(out reflect.Value, i int64) bool {
	switch out.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i < 0 || out.OverflowUint(uint64(i)) {
			return false
		}
		out.SetUint(uint64(i))
	default:
		if out.OverflowInt(i) {
			return false
		}
		out.SetInt(i)
	}
	return true
}

func toFloat(v value.Value) (float64, bool) {
	var in any
	switch v.Kind() {
	case value.KindInt, value.KindFloat:
		in = v.Interface()
	case value.KindString:
		s, _ := v.AsString()
		in = strings.TrimSpace(s)
	default:
		return 0, false
	}
	f, err := cast.ToFloat64E(in)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// toString renders scalars and fmt.Stringer objects. Lists and null are
// never strings.
func toString(v value.Value) (string, bool) {
	switch v.Kind() {
	case value.KindNull, value.KindList:
		return "", false
	case value.KindObject:
		if _, ok := v.Interface().(fmt.Stringer); !ok {
			return "", false
		}
	}
	s, err := cast.ToStringE(v.Interface())
	return s, err == nil
}

// toList splits strings on commas and wraps other scalars.
func toList(v value.Value) []value.Value {
	if items, ok := v.AsList(); ok {
		return items
	}
	if s, ok := v.AsString(); ok {
		if s == "" {
			return nil
		}
		parts := strings.Split(s, ",")
		items := make([]value.Value, len(parts))
		for i, p := range parts {
			items[i] = value.String(p)
		}
		return items
	}
	return []value.Value{v}
}
