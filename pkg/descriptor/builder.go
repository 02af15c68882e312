package descriptor

import (
	"maps"

	"github.com/ArielEspinoza07/console-forge/pkg/handler"
)

// Builder accumulates a CommandSpec fluently. Nothing is validated until
// Build.
type Builder struct {
	spec CommandSpec
}

// NewBuilder starts a command called name.
func NewBuilder(name string) *Builder {
	return &Builder{spec: CommandSpec{Name: name}}
}

// Description sets the one-line summary.
func (b *Builder) Description(d string) *Builder {
	b.spec.Description = d
	return b
}

// Arg appends a positional argument.
func (b *Builder) Arg(a *Arg) *Builder {
	b.spec.Args = append(b.spec.Args, a)
	return b
}

// Args appends several positional arguments in order.
func (b *Builder) Args(args ...*Arg) *Builder {
	b.spec.Args = append(b.spec.Args, args...)
	return b
}

// Opt appends an option.
func (b *Builder) Opt(o *Opt) *Builder {
	b.spec.Opts = append(b.spec.Opts, o)
	return b
}

// Opts appends several options.
func (b *Builder) Opts(opts ...*Opt) *Builder {
	b.spec.Opts = append(b.spec.Opts, opts...)
	return b
}

// Handler sets the handler reference; see handler.Catalog.Resolve for the accepted shapes.
func (b *Builder) Handler(h any) *Builder {
	b.spec.Handler = h
	return b
}

// Help sets the long help text.
func (b *Builder) Help(help string) *Builder {
	b.spec.Help = help
	return b
}

// Hidden marks the command as hidden.
func (b *Builder) Hidden(hidden bool) *Builder {
	b.spec.Hidden = hidden
	return b
}

// Extra sets one metadata key.
func (b *Builder) Extra(key string, v any) *Builder {
	if b.spec.Extra == nil {
		b.spec.Extra = make(map[string]any)
	}
	b.spec.Extra[key] = v
	return b
}

// Catalog sets the catalog used to resolve name-based handlers.
func (b *Builder) Catalog(c *handler.Catalog) *Builder {
	b.spec.Catalog = c
	return b
}

// Build validates the accumulated spec. The builder stays usable.
func (b *Builder) Build() (*Command, error) {
	spec := b.spec
	spec.Extra = maps.Clone(spec.Extra)
	return NewCommand(spec)
}

// Must panics if err is non-nil. It is meant for descriptors declared in
// package-level variables and tests.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
