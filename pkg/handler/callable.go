package handler

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Callable is a resolved handler reference: the function to call and its
// parameter list. It is built once when a descriptor is validated.
type Callable struct {
	label  string
	params []Param
	fnType reflect.Type
	target func() (reflect.Value, error)
}

func (c *Callable) String() string { return c.label }

// Params returns a copy of the parameter list.
func (c *Callable) Params() []Param {
	return append([]Param(nil), c.params...)
}

// Resolve resolves h against DefaultCatalog.
func Resolve(h any) (*Callable, error) {
	return DefaultCatalog.Resolve(h)
}

// Resolve turns a handler reference into a Callable. Accepted shapes, in
// order: a func or *Func, an object with an Invoke method, a Pair (or a
// two-element [2]any / []any), a catalog function name, "Type::method",
// and a catalog type whose instances have an Invoke method.
func (c *Catalog) Resolve(h any) (*Callable, error) {
	switch ref := h.(type) {
	case nil:
		return nil, fmt.Errorf("%w: handler is nil", ErrInvalidHandler)
	case *Func:
		if ref == nil {
			return nil, fmt.Errorf("%w: handler is nil", ErrInvalidHandler)
		}
		return funcCallable(ref.fn, ref.decls)
	case Pair:
		return c.resolvePair(ref.Target, ref.Method)
	case [2]any:
		return c.resolvePairElems(ref[0], ref[1])
	case []any:
		if len(ref) != 2 {
			return nil, fmt.Errorf("%w: array handler must have exactly 2 elements, got %d", ErrInvalidHandler, len(ref))
		}
		return c.resolvePairElems(ref[0], ref[1])
	case string:
		return c.resolveName(ref)
	}

	rv := reflect.ValueOf(h)
	if rv.Kind() == reflect.Func {
		return funcCallable(rv, nil)
	}
	if rv.MethodByName("Invoke").IsValid() {
		return methodCallable(h, "Invoke")
	}
	return nil, fmt.Errorf("%w: unsupported handler type %T", ErrInvalidHandler, h)
}

func (c *Catalog) resolvePairElems(target, method any) (*Callable, error) {
	name, ok := method.(string)
	if !ok {
		return nil, fmt.Errorf("%w: method must be a string, got %T", ErrInvalidHandler, method)
	}
	return c.resolvePair(target, name)
}

func (c *Catalog) resolvePair(target any, method string) (*Callable, error) {
	if method == "" {
		return nil, fmt.Errorf("%w: empty method name", ErrInvalidHandler)
	}
	switch t := target.(type) {
	case nil:
		return nil, fmt.Errorf("%w: pair target is nil", ErrInvalidHandler)
	case string:
		return c.typeCallable(t, method)
	default:
		return methodCallable(t, method)
	}
}

func (c *Catalog) resolveName(name string) (*Callable, error) {
	if _, ok := c.lookupFunc(name); ok {
		return c.namedFuncCallable(name)
	}
	if typ, method, ok := strings.Cut(name, "::"); ok {
		return c.typeCallable(typ, method)
	}
	if _, ok := c.lookupType(name); ok {
		return c.typeCallable(name, "Invoke")
	}
	return nil, fmt.Errorf("%w: %q is not a registered function, method or invokable type", ErrInvalidHandler, name)
}

func funcCallable(fn reflect.Value, decls []Decl) (*Callable, error) {
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, fmt.Errorf("%w: not a function", ErrInvalidHandler)
	}
	ps, err := params(fn.Type(), decls)
	if err != nil {
		return nil, err
	}
	return &Callable{
		label:  funcName(fn),
		params: ps,
		fnType: fn.Type(),
		target: func() (reflect.Value, error) { return fn, nil },
	}, nil
}

func methodCallable(target any, method string) (*Callable, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: method %s has no target", ErrInvalidHandler, method)
	}
	m := reflect.ValueOf(target).MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: method %T.%s does not exist", ErrInvalidHandler, target, method)
	}
	ps, err := params(m.Type(), declsFor(target, method))
	if err != nil {
		return nil, err
	}
	return &Callable{
		label:  fmt.Sprintf("%T.%s", target, method),
		params: ps,
		fnType: m.Type(),
		target: func() (reflect.Value, error) { return m, nil },
	}, nil
}

// namedFuncCallable looks the function up again on every call so that a
// catalog change is noticed.
func (c *Catalog) namedFuncCallable(name string) (*Callable, error) {
	f, _ := c.lookupFunc(name)
	ps, err := params(f.fn.Type(), f.decls)
	if err != nil {
		return nil, err
	}
	fnType := f.fn.Type()
	return &Callable{
		label:  name,
		params: ps,
		fnType: fnType,
		target: func() (reflect.Value, error) {
			f, ok := c.lookupFunc(name)
			if !ok || f.fn.Type() != fnType {
				return reflect.Value{}, fmt.Errorf("%w: function %q", ErrUnresolvable, name)
			}
			return f.fn, nil
		},
	}, nil
}

// typeCallable checks the method on a prototype instance and constructs a
// fresh instance for every call.
func (c *Catalog) typeCallable(typeName, method string) (*Callable, error) {
	if typeName == "" || method == "" {
		return nil, fmt.Errorf("%w: malformed reference %q", ErrInvalidHandler, typeName+"::"+method)
	}
	factory, ok := c.lookupType(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: type %q is not registered", ErrInvalidHandler, typeName)
	}
	proto := factory()
	if proto == nil {
		return nil, fmt.Errorf("%w: factory for type %q returned nil", ErrInvalidHandler, typeName)
	}
	m := reflect.ValueOf(proto).MethodByName(method)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: type %q has no method %s", ErrInvalidHandler, typeName, method)
	}
	ps, err := params(m.Type(), declsFor(proto, method))
	if err != nil {
		return nil, err
	}
	fnType := m.Type()
	return &Callable{
		label:  typeName + "::" + method,
		params: ps,
		fnType: fnType,
		target: func() (reflect.Value, error) {
			factory, ok := c.lookupType(typeName)
			if !ok {
				return reflect.Value{}, fmt.Errorf("%w: type %q", ErrUnresolvable, typeName)
			}
			inst := factory()
			if inst == nil {
				return reflect.Value{}, fmt.Errorf("%w: factory for type %q returned nil", ErrUnresolvable, typeName)
			}
			m := reflect.ValueOf(inst).MethodByName(method)
			if !m.IsValid() || m.Type() != fnType {
				return reflect.Value{}, fmt.Errorf("%w: %s::%s", ErrUnresolvable, typeName, method)
			}
			return m, nil
		},
	}, nil
}

func declsFor(target any, method string) []Decl {
	if d, ok := target.(Declarer); ok {
		return d.Declare(method)
	}
	return nil
}

func funcName(fn reflect.Value) string {
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		return f.Name()
	}
	return fn.Type().String()
}

// call invokes the target with already-bound arguments.
func (c *Callable) call(args []reflect.Value) ([]reflect.Value, error) {
	fn, err := c.target()
	if err != nil {
		return nil, err
	}
	if c.fnType.IsVariadic() {
		return fn.CallSlice(args), nil
	}
	return fn.Call(args), nil
}
