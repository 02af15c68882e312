package descriptor

import (
	"maps"
	"strings"

	"github.com/ArielEspinoza07/console-forge/pkg/handler"
)

// CommandSpec is the construction input of a Command.
type CommandSpec struct {
	Name        string
	Description string
	Args        []*Arg
	Opts        []*Opt
	// Handler is any reference accepted by handler.Catalog.Resolve, or nil.
	Handler any
	// Help is the long help text; empty means none.
	Help   string
	Hidden bool
	Extra  map[string]any
	// Catalog resolves name-based handler references. Nil means
	// handler.DefaultCatalog.
	Catalog *handler.Catalog
}

// Command is a validated command descriptor. It is immutable: every With
// method returns a new, validated descriptor.
type Command struct {
	spec     CommandSpec
	callable *handler.Callable
}

// NewCommand validates spec and returns the command it describes. The
// first violated invariant is reported.
func NewCommand(spec CommandSpec) (*Command, error) {
	spec = copySpec(spec)
	name := spec.Name

	if !ValidName(name) {
		return nil, newError(ErrInvalidCommandName, name)
	}

	seen := make(map[string]bool, len(spec.Args))
	arrays := 0
	for i, a := range spec.Args {
		if a == nil {
			return nil, newErrorf(ErrNilArgument, name, "position %d", i)
		}
		if seen[a.Name()] {
			return nil, newError(ErrDuplicateArgument, a.Name())
		}
		seen[a.Name()] = true
		if a.IsArray() {
			arrays++
		}
	}
	if arrays > 1 {
		return nil, newError(ErrMultipleArrayArguments, name)
	}
	for i, a := range spec.Args {
		if a.IsArray() && i != len(spec.Args)-1 {
			return nil, newError(ErrArrayArgumentNotLast, a.Name())
		}
	}
	optional := ""
	for _, a := range spec.Args {
		if !a.Required() {
			optional = a.Name()
			continue
		}
		if optional != "" {
			return nil, newErrorf(ErrRequiredAfterOptional, a.Name(), "follows optional argument '%s'", optional)
		}
	}

	optNames := make(map[string]bool, len(spec.Opts))
	shortcuts := make(map[string]string)
	for i, o := range spec.Opts {
		if o == nil {
			return nil, newErrorf(ErrNilOption, name, "position %d", i)
		}
		if optNames[o.Name()] {
			return nil, newError(ErrDuplicateOption, o.Name())
		}
		optNames[o.Name()] = true
	}
	for _, o := range spec.Opts {
		for _, s := range o.Shortcuts() {
			key := strings.ToLower(s)
			if owner, ok := shortcuts[key]; ok {
				return nil, newErrorf(ErrDuplicateShortcut, s, "used by '%s' and '%s'", owner, o.Name())
			}
			shortcuts[key] = o.Name()
		}
	}

	c := &Command{spec: spec}
	if spec.Handler != nil {
		callable, err := spec.catalog().Resolve(spec.Handler)
		if err != nil {
			return nil, &Error{Kind: ErrInvalidHandler, Subject: name, Cause: err}
		}
		c.callable = callable
	}
	return c, nil
}

func (s CommandSpec) catalog() *handler.Catalog {
	if s.Catalog != nil {
		return s.Catalog
	}
	return handler.DefaultCatalog
}

func copySpec(s CommandSpec) CommandSpec {
	s.Args = append([]*Arg(nil), s.Args...)
	s.Opts = append([]*Opt(nil), s.Opts...)
	s.Extra = maps.Clone(s.Extra)
	return s
}

// Validate re-checks c. Construction already validated it, so on a valid
// descriptor it returns c itself.
func (c *Command) Validate() (*Command, error) {
	if _, err := NewCommand(c.spec); err != nil {
		return nil, err
	}
	return c, nil
}

// Name is the command name, possibly namespaced with ":".
func (c *Command) Name() string { return c.spec.Name }

// Description is the one-line summary.
func (c *Command) Description() string { return c.spec.Description }

// Help is the long help text, or "".
func (c *Command) Help() string { return c.spec.Help }

// Hidden reports whether the command is left out of listings.
func (c *Command) Hidden() bool { return c.spec.Hidden }

// Handler returns the handler reference as given, before resolution.
func (c *Command) Handler() any { return c.spec.Handler }

// Callable returns the handler resolved at validation, or nil when the
// command has no handler.
func (c *Command) Callable() *handler.Callable { return c.callable }

// Args returns a copy of the argument list.
func (c *Command) Args() []*Arg { return append([]*Arg(nil), c.spec.Args...) }

// Opts returns a copy of the option list.
func (c *Command) Opts() []*Opt { return append([]*Opt(nil), c.spec.Opts...) }

// Extra returns a copy of the extra metadata.
func (c *Command) Extra() map[string]any { return maps.Clone(c.spec.Extra) }

// Spec returns a copy of the construction input of c.
func (c *Command) Spec() CommandSpec { return copySpec(c.spec) }

// FindArg returns the argument called name.
func (c *Command) FindArg(name string) (*Arg, bool) {
	for _, a := range c.spec.Args {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// FindOpt returns the option called name.
func (c *Command) FindOpt(name string) (*Opt, bool) {
	for _, o := range c.spec.Opts {
		if o.Name() == name {
			return o, true
		}
	}
	return nil, false
}

func (c *Command) derive(edit func(*CommandSpec)) (*Command, error) {
	spec := c.Spec()
	edit(&spec)
	return NewCommand(spec)
}

// WithName returns a copy called name.
func (c *Command) WithName(name string) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Name = name })
}

// WithDescription returns a copy with a new summary.
func (c *Command) WithDescription(description string) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Description = description })
}

// WithHelp returns a copy with new help text.
func (c *Command) WithHelp(help string) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Help = help })
}

// WithoutHelp returns a copy with the help text cleared.
func (c *Command) WithoutHelp() (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Help = "" })
}

// AsHidden returns a copy with the hidden flag set to hidden.
func (c *Command) AsHidden(hidden bool) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Hidden = hidden })
}

// WithHandler returns a copy bound to h. h is resolved again.
func (c *Command) WithHandler(h any) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Handler = h })
}

// WithArgs replaces the whole argument list.
func (c *Command) WithArgs(args ...*Arg) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Args = append([]*Arg(nil), args...) })
}

// AddArg appends a; a duplicate name fails validation.
func (c *Command) AddArg(a *Arg) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Args = append(s.Args, a) })
}

// ReplaceArg swaps the argument with the same name as a, or appends a.
func (c *Command) ReplaceArg(a *Arg) (*Command, error) {
	return c.derive(func(s *CommandSpec) {
		for i, existing := range s.Args {
			if a != nil && existing != nil && existing.Name() == a.Name() {
				s.Args[i] = a
				return
			}
		}
		s.Args = append(s.Args, a)
	})
}

// WithoutArg drops the argument called name, if present.
func (c *Command) WithoutArg(name string) (*Command, error) {
	return c.derive(func(s *CommandSpec) {
		kept := s.Args[:0]
		for _, a := range s.Args {
			if a == nil || a.Name() != name {
				kept = append(kept, a)
			}
		}
		s.Args = kept
	})
}

// WithOpts replaces the whole option list.
func (c *Command) WithOpts(opts ...*Opt) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Opts = append([]*Opt(nil), opts...) })
}

// AddOpt appends o; a duplicate name or shortcut fails validation.
func (c *Command) AddOpt(o *Opt) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Opts = append(s.Opts, o) })
}

// ReplaceOpt swaps the option with the same name as o, or appends o.
func (c *Command) ReplaceOpt(o *Opt) (*Command, error) {
	return c.derive(func(s *CommandSpec) {
		for i, existing := range s.Opts {
			if o != nil && existing != nil && existing.Name() == o.Name() {
				s.Opts[i] = o
				return
			}
		}
		s.Opts = append(s.Opts, o)
	})
}

// WithoutOpt drops the option called name, if present.
func (c *Command) WithoutOpt(name string) (*Command, error) {
	return c.derive(func(s *CommandSpec) {
		kept := s.Opts[:0]
		for _, o := range s.Opts {
			if o == nil || o.Name() != name {
				kept = append(kept, o)
			}
		}
		s.Opts = kept
	})
}

// WithExtra replaces the extra metadata.
func (c *Command) WithExtra(extra map[string]any) (*Command, error) {
	return c.derive(func(s *CommandSpec) { s.Extra = maps.Clone(extra) })
}

// MergeExtra overlays extra onto the existing metadata.
func (c *Command) MergeExtra(extra map[string]any) (*Command, error) {
	return c.derive(func(s *CommandSpec) {
		if s.Extra == nil {
			s.Extra = make(map[string]any, len(extra))
		}
		maps.Copy(s.Extra, extra)
	})
}
