package handler

import (
	"reflect"

	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

// Decl declares the input name of one handler parameter and, optionally,
// its default value. Injected parameters (context, input, output, style,
// IO) take no declaration; declarations are matched in order against the
// remaining parameters.
type Decl struct {
	Name       string
	Default    value.Value
	HasDefault bool
}

// Name declares a parameter without a default.
func Name(name string) Decl {
	return Decl{Name: name}
}

// Default declares a parameter with a default. def is converted with
// value.Of unless it already is a value.Value.
func Default(name string, def any) Decl {
	v, ok := def.(value.Value)
	if !ok {
		v = value.Of(def)
	}
	return Decl{Name: name, Default: v, HasDefault: true}
}

// Declarer is implemented by handler objects that name the parameters of
// their methods.
type Declarer interface {
	Declare(method string) []Decl
}

// Func is a function handler with declared parameters.
type Func struct {
	fn    reflect.Value
	decls []Decl
}

// NewFunc pairs fn with its parameter declarations. fn must be a func;
// this is checked when the handler is resolved.
func NewFunc(fn any, decls ...Decl) *Func {
	return &Func{fn: reflect.ValueOf(fn), decls: append([]Decl(nil), decls...)}
}

// Pair references a method on an object, or on an instance of a catalog
// type when Target is a string.
type Pair struct {
	Target any
	Method string
}
