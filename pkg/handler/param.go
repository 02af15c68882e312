package handler

import (
	"context"
	"fmt"
	"reflect"

	"github.com/ArielEspinoza07/console-forge/pkg/console"
	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

// TypeKind is the coercion category of a parameter type.
type TypeKind int

const (
	TypeAny TypeKind = iota
	TypeValue
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeList
	TypeEnum
	TypeObject

	// injected
	TypeContext
	TypeInput
	TypeOutput
	TypeStyle
	TypeIO
)

var typeKindNames = [...]string{
	TypeAny:     "any",
	TypeValue:   "value",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeString:  "string",
	TypeList:    "list",
	TypeEnum:    "enum",
	TypeObject:  "object",
	TypeContext: "context",
	TypeInput:   "input",
	TypeOutput:  "output",
	TypeStyle:   "style",
	TypeIO:      "io",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// Injected reports whether parameters of this kind are supplied by the
// framework rather than resolved from input.
func (k TypeKind) Injected() bool { return k >= TypeContext }

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	inputType   = reflect.TypeOf((*console.Input)(nil)).Elem()
	outputType  = reflect.TypeOf((*console.Output)(nil)).Elem()
	styleType   = reflect.TypeOf((*console.Style)(nil))
	ioType      = reflect.TypeOf((*console.IO)(nil))
	valueType   = reflect.TypeOf(value.Value{})
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Type is the resolved description of a declared parameter type.
type Type struct {
	Kind TypeKind
	// Go is the declared Go type.
	Go reflect.Type
	// Nullable is true for pointers, interfaces, slices and maps.
	Nullable bool
	// Elem describes list elements when Kind is TypeList.
	Elem *Type
}

func (t Type) String() string {
	if t.Go == nil {
		return t.Kind.String()
	}
	return t.Go.String()
}

// base is the type coercion produces before any pointer wrapping.
func (t Type) base() reflect.Type {
	if t.Go.Kind() == reflect.Pointer && t.Kind != TypeObject && !t.Kind.Injected() {
		return t.Go.Elem()
	}
	return t.Go
}

func typeOf(rt reflect.Type) Type {
	switch rt {
	case contextType:
		return Type{Kind: TypeContext, Go: rt}
	case inputType:
		return Type{Kind: TypeInput, Go: rt}
	case outputType:
		return Type{Kind: TypeOutput, Go: rt}
	case styleType:
		return Type{Kind: TypeStyle, Go: rt}
	case ioType:
		return Type{Kind: TypeIO, Go: rt}
	case valueType:
		return Type{Kind: TypeValue, Go: rt}
	}

	t := Type{Go: rt}
	base := rt
	if rt.Kind() == reflect.Pointer {
		t.Nullable = true
		base = rt.Elem()
	}

	if isEnum(base) {
		t.Kind = TypeEnum
		return t
	}

	scalar := true
	switch base.Kind() {
	case reflect.Bool:
		t.Kind = TypeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		t.Kind = TypeInt
	case reflect.Float32, reflect.Float64:
		t.Kind = TypeFloat
	case reflect.String:
		t.Kind = TypeString
	default:
		scalar = false
	}
	if scalar {
		return t
	}

	// pointers to anything else are objects in their own right
	t.Nullable = false
	switch rt.Kind() {
	case reflect.Slice:
		elem := typeOf(rt.Elem())
		t.Kind = TypeList
		t.Elem = &elem
		t.Nullable = true
	case reflect.Interface:
		t.Nullable = true
		t.Kind = TypeObject
		if rt.NumMethod() == 0 {
			t.Kind = TypeAny
		}
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan:
		t.Kind = TypeObject
		t.Nullable = true
	default:
		t.Kind = TypeObject
	}
	return t
}

// Param is one positional parameter of a handler.
type Param struct {
	Name       string
	Type       Type
	Default    value.Value
	HasDefault bool
	Variadic   bool
}

// params derives the parameter list of fnType from its declarations.
func params(fnType reflect.Type, decls []Decl) ([]Param, error) {
	n := fnType.NumIn()
	out := make([]Param, n)
	free := 0
	for i := 0; i < n; i++ {
		out[i].Type = typeOf(fnType.In(i))
		if !out[i].Type.Kind.Injected() {
			free++
		}
	}
	if fnType.IsVariadic() {
		out[n-1].Variadic = true
	}

	if len(decls) != 0 && len(decls) != free {
		return nil, fmt.Errorf("%w: %d declarations for %d parameters of %s", ErrSignature, len(decls), free, fnType)
	}

	d := 0
	for i := range out {
		if out[i].Type.Kind.Injected() || len(decls) == 0 {
			continue
		}
		decl := decls[d]
		d++
		if decl.Name == "" {
			return nil, fmt.Errorf("%w: parameter %d of %s has an empty name", ErrSignature, i, fnType)
		}
		out[i].Name = decl.Name
		out[i].Default = decl.Default
		out[i].HasDefault = decl.HasDefault
	}
	return out, nil
}
