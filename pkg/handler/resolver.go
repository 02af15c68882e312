package handler

import (
	"context"
	"io"
	"reflect"

	"github.com/rs/zerolog/log"

	"github.com/ArielEspinoza07/console-forge/pkg/console"
	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

// Resolver binds handler parameters from parsed input and calls the
// handler. It holds no state between calls.
type Resolver struct{}

// NewResolver creates a resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Bind returns the arguments c would be called with, in parameter order.
func (r *Resolver) Bind(ctx context.Context, c *Callable, in console.Input, out console.Output) ([]any, error) {
	args, err := r.bind(ctx, c, in, out)
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a.Interface()
	}
	return vals, nil
}

// Invoke binds the parameters of c and calls it. An integer first result
// is the exit code; a non-nil trailing error result is returned as is.
func (r *Resolver) Invoke(ctx context.Context, c *Callable, in console.Input, out console.Output) (int, error) {
	args, err := r.bind(ctx, c, in, out)
	if err != nil {
		return 0, err
	}

	log.Debug().Str("handler", c.String()).Int("params", len(args)).Msg("invoking handler")

	results, err := c.call(args)
	if err != nil {
		return 0, err
	}
	return exitCode(results)
}

func (r *Resolver) bind(ctx context.Context, c *Callable, in console.Input, out console.Output) ([]reflect.Value, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if in == nil {
		in = console.NewMapInput(nil)
	}
	if out == nil {
		out = console.NewOutput(io.Discard, nil)
	}

	var style *console.Style
	var facade *console.IO

	args := make([]reflect.Value, len(c.params))
	for i, p := range c.params {
		switch p.Type.Kind {
		case TypeContext:
			args[i] = reflect.ValueOf(&ctx).Elem()
			continue
		case TypeInput:
			args[i] = reflect.ValueOf(&in).Elem()
			continue
		case TypeOutput:
			args[i] = reflect.ValueOf(&out).Elem()
			continue
		case TypeStyle, TypeIO:
			if style == nil {
				style = console.NewStyle(in, out)
				facade = console.NewIO(style)
			}
			if p.Type.Kind == TypeStyle {
				args[i] = reflect.ValueOf(style)
			} else {
				args[i] = reflect.ValueOf(facade)
			}
			continue
		}

		raw := lookup(p, in)
		if p.Variadic {
			raw = variadic(raw)
		}
		v, err := Coerce(p, raw)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// lookup probes the candidate names of p, arguments before options, and
// falls back to the declared default.
func lookup(p Param, in console.Input) value.Value {
	if p.Name != "" {
		for _, name := range Candidates(p.Name) {
			if in.HasArgument(name) {
				return in.Argument(name)
			}
			if in.HasOption(name) {
				return in.Option(name)
			}
		}
	}
	if p.HasDefault {
		return p.Default
	}
	return value.Null()
}

func variadic(v value.Value) value.Value {
	switch {
	case v.IsNull():
		return value.List()
	case v.IsList():
		return v
	default:
		return value.List(v)
	}
}

func exitCode(results []reflect.Value) (int, error) {
	if len(results) == 0 {
		return 0, nil
	}

	var err error
	last := results[len(results)-1]
	if last.Type() == errorType && !last.IsNil() {
		err = last.Interface().(error)
	}

	code := 0
	switch first := results[0]; first.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		code = int(first.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		code = int(first.Uint())
	}
	return code, err
}
