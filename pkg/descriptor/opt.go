package descriptor

import (
	"regexp"
	"strings"

	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

var shortcutPattern = regexp.MustCompile(`^[A-Za-z](\|[A-Za-z])*$`)

// OptSpec is the construction input of an Opt.
type OptSpec struct {
	Name string
	// Shortcut is empty, a single letter, or letters joined by "|".
	Shortcut    string
	Description string
	Negatable   bool
	AcceptValue bool
	IsArray     bool
	Default     value.Value
	Coercer     Coercer
}

// Opt describes one named option. It is immutable once built.
type Opt struct {
	spec OptSpec
}

// NewOpt validates spec and returns the option it describes.
func NewOpt(spec OptSpec) (*Opt, error) {
	name := spec.Name
	if !ValidName(name) {
		return nil, newError(ErrInvalidOptionName, name)
	}
	if spec.Shortcut != "" && !shortcutPattern.MatchString(spec.Shortcut) {
		return nil, newErrorf(ErrInvalidOptionShortcut, name, "%q", spec.Shortcut)
	}
	if spec.Negatable && spec.AcceptValue {
		return nil, newError(ErrNegatableOptionAcceptsValue, name)
	}
	if spec.Negatable && spec.IsArray {
		return nil, newError(ErrNegatableOptionIsArray, name)
	}
	if spec.IsArray && !spec.AcceptValue {
		return nil, newError(ErrArrayOptionMustAcceptValue, name)
	}
	if !spec.AcceptValue && !spec.Default.IsNull() {
		return nil, newError(ErrValueNoneOptionHasDefault, name)
	}
	if spec.IsArray && !spec.Default.IsNull() && !spec.Default.IsList() {
		return nil, newErrorf(ErrArrayOptionDefaultTypeMismatch, name, "got %s", spec.Default.Kind())
	}
	if !spec.IsArray && spec.Default.IsList() {
		return nil, newError(ErrNonArrayOptionDefaultIsArray, name)
	}
	return &Opt{spec: spec}, nil
}

// Flag returns a value-less option such as --force.
func Flag(name, shortcut, description string) (*Opt, error) {
	return NewOpt(OptSpec{Name: name, Shortcut: shortcut, Description: description})
}

// NegatableFlag returns a flag that also accepts the --no-<name> form.
func NegatableFlag(name, shortcut, description string) (*Opt, error) {
	return NewOpt(OptSpec{Name: name, Shortcut: shortcut, Description: description, Negatable: true})
}

// ValueOpt returns a single-value option such as --env=prod.
func ValueOpt(name, shortcut, description string, def value.Value) (*Opt, error) {
	return NewOpt(OptSpec{
		Name:        name,
		Shortcut:    shortcut,
		Description: description,
		AcceptValue: true,
		Default:     def,
	})
}

// ValuesOpt returns a repeatable option such as --path=a --path=b. Without
// a default it defaults to the empty list.
func ValuesOpt(name, shortcut, description string, def value.Value) (*Opt, error) {
	if def.IsNull() {
		def = value.List()
	}
	return NewOpt(OptSpec{
		Name:        name,
		Shortcut:    shortcut,
		Description: description,
		AcceptValue: true,
		IsArray:     true,
		Default:     def,
	})
}

// WithCoercer returns a copy of o with the coercer attached.
func (o *Opt) WithCoercer(c Coercer) (*Opt, error) {
	spec := o.spec
	spec.Coercer = c
	return NewOpt(spec)
}

// Name is the long option name, without dashes.
func (o *Opt) Name() string { return o.spec.Name }

// Shortcut is the raw shortcut string, e.g. "v|x".
func (o *Opt) Shortcut() string { return o.spec.Shortcut }

// Description is the help text of o.
func (o *Opt) Description() string { return o.spec.Description }

// Negatable reports whether o also accepts --no-<name>.
func (o *Opt) Negatable() bool { return o.spec.Negatable }

// AcceptValue reports whether o takes a value rather than acting as a flag.
func (o *Opt) AcceptValue() bool { return o.spec.AcceptValue }

// IsArray reports whether o may be repeated to collect several values.
func (o *Opt) IsArray() bool { return o.spec.IsArray }

// Default is the value used when o is absent.
func (o *Opt) Default() value.Value { return o.spec.Default }

// Coercer returns the value transform of o, or nil.
func (o *Opt) Coercer() Coercer { return o.spec.Coercer }

// Spec returns the construction input of o, for deriving variants.
func (o *Opt) Spec() OptSpec { return o.spec }

// Shortcuts splits the shortcut string into its letters.
func (o *Opt) Shortcuts() []string {
	if o.spec.Shortcut == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(o.spec.Shortcut, "|") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
