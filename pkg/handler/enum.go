package handler

import (
	"reflect"
	"regexp"
	"strconv"

	"github.com/spf13/cast"

	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

// Enum is implemented by enumeration types usable as handler parameters.
// EnumCases is called on the zero value and must not depend on it.
type Enum interface {
	EnumCases() []EnumCase
}

// EnumCase is one member of an enumeration. Backing is an integer or a
// string for backed enums and nil for unit enums. Member is the Go value
// bound to the parameter.
type EnumCase struct {
	Name    string
	Backing any
	Member  any
}

var (
	enumType       = reflect.TypeOf((*Enum)(nil)).Elem()
	numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

func isEnum(t reflect.Type) bool {
	return t.Kind() != reflect.Interface && t.Implements(enumType)
}

func enumCases(t reflect.Type) []EnumCase {
	return reflect.Zero(t).Interface().(Enum).EnumCases()
}

func backed(cases []EnumCase) bool {
	for _, c := range cases {
		if c.Backing != nil {
			return true
		}
	}
	return false
}

// matchEnum finds the member of enum type t selected by v.
func matchEnum(t reflect.Type, v value.Value) (reflect.Value, bool) {
	if obj, ok := v.AsObject(); ok {
		rv := reflect.ValueOf(obj)
		if rv.IsValid() && rv.Type() == t {
			return rv, true
		}
		return reflect.Value{}, false
	}

	cases := enumCases(t)
	if !backed(cases) {
		s, ok := v.AsString()
		if !ok {
			return reflect.Value{}, false
		}
		for _, c := range cases {
			if c.Name == s {
				return member(t, c)
			}
		}
		return reflect.Value{}, false
	}

	candidate, ok := normalizeBacking(v)
	if !ok {
		return reflect.Value{}, false
	}
	for _, c := range cases {
		if backingEqual(c.Backing, candidate) {
			return member(t, c)
		}
	}
	return reflect.Value{}, false
}

// normalizeBacking turns v into an int64 or a string comparable with
// backing values: numeric strings become numbers, integral floats become
// integers and other floats their decimal string.
func normalizeBacking(v value.Value) (any, bool) {
	switch v.Kind() {
	case value.KindInt:
		i, _ := v.AsInt()
		return i, true
	case value.KindFloat:
		f, _ := v.AsFloat()
		return floatCandidate(f), true
	case value.KindString:
		s, _ := v.AsString()
		if numericPattern.MatchString(s) {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return i, true
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return floatCandidate(f), true
			}
		}
		return s, true
	}
	return nil, false
}

func floatCandidate(f float64) any {
	if f == float64(int64(f)) {
		return int64(f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func backingEqual(backing, candidate any) bool {
	switch b := backing.(type) {
	case string:
		return b == cast.ToString(candidate)
	case nil:
		return false
	default:
		want, err := cast.ToInt64E(b)
		if err != nil {
			return false
		}
		got, ok := candidate.(int64)
		return ok && got == want
	}
}

func member(t reflect.Type, c EnumCase) (reflect.Value, bool) {
	rv := reflect.ValueOf(c.Member)
	if !rv.IsValid() {
		return reflect.Value{}, false
	}
	if rv.Type() != t {
		if !rv.Type().ConvertibleTo(t) {
			return reflect.Value{}, false
		}
		rv = rv.Convert(t)
	}
	return rv, true
}
