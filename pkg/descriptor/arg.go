package descriptor

import (
	"regexp"

	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9:_-]+$`)

// ValidName reports whether name is usable for a command, argument or option.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Coercer converts a raw input value before it reaches a handler.
type Coercer func(value.Value) (value.Value, error)

// ArgSpec is the construction input of an Arg.
type ArgSpec struct {
	Name        string
	Description string
	Required    bool
	IsArray     bool
	Default     value.Value
	Coercer     Coercer
}

// Arg describes one positional argument. It is immutable once built.
type Arg struct {
	spec ArgSpec
}

// NewArg validates spec and returns the argument it describes.
func NewArg(spec ArgSpec) (*Arg, error) {
	if !ValidName(spec.Name) {
		return nil, newError(ErrInvalidArgumentName, spec.Name)
	}
	if spec.Required && !spec.Default.IsNull() {
		return nil, newError(ErrRequiredArgHasDefault, spec.Name)
	}
	if spec.IsArray && !spec.Default.IsNull() && !spec.Default.IsList() {
		return nil, newErrorf(ErrArrayDefaultTypeMismatch, spec.Name, "got %s", spec.Default.Kind())
	}
	if !spec.IsArray && spec.Default.IsList() {
		return nil, newError(ErrNonArrayDefaultIsArray, spec.Name)
	}
	return &Arg{spec: spec}, nil
}

// RequiredArg returns a required scalar argument.
func RequiredArg(name, description string) (*Arg, error) {
	return NewArg(ArgSpec{Name: name, Description: description, Required: true})
}

// OptionalArg returns an optional scalar argument with the given default.
func OptionalArg(name, description string, def value.Value) (*Arg, error) {
	return NewArg(ArgSpec{Name: name, Description: description, Default: def})
}

// ArrayArg returns an array argument. An optional array argument without a
// default gets the empty list; a required one never keeps a default.
func ArrayArg(name, description string, required bool, def value.Value) (*Arg, error) {
	switch {
	case required:
		def = value.Null()
	case def.IsNull():
		def = value.List()
	}
	return NewArg(ArgSpec{
		Name:        name,
		Description: description,
		Required:    required,
		IsArray:     true,
		Default:     def,
	})
}

// WithCoercer returns a copy of a with the coercer attached.
func (a *Arg) WithCoercer(c Coercer) (*Arg, error) {
	spec := a.spec
	spec.Coercer = c
	return NewArg(spec)
}

// Name is the argument name as bound to handler parameters.
func (a *Arg) Name() string { return a.spec.Name }

// Description is the help text of a.
func (a *Arg) Description() string { return a.spec.Description }

// Required reports whether a value must be given.
func (a *Arg) Required() bool { return a.spec.Required }

// IsArray reports whether a collects every remaining positional value.
func (a *Arg) IsArray() bool { return a.spec.IsArray }

// Default is the value used when a is omitted. Null for required arguments.
func (a *Arg) Default() value.Value { return a.spec.Default }

// Coercer returns the value transform of a, or nil.
func (a *Arg) Coercer() Coercer { return a.spec.Coercer }

// Spec returns the construction input of a, for deriving variants.
func (a *Arg) Spec() ArgSpec { return a.spec }
