package handler

import (
	"errors"
	"fmt"

	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

var (
	// ErrInvalidHandler is returned when a reference matches no accepted shape.
	ErrInvalidHandler = errors.New("invalid handler")
	// ErrUnresolvable is returned at call time when a name-based reference
	// no longer resolves against its catalog.
	ErrUnresolvable = errors.New("handler is no longer resolvable")
	// ErrSignature is returned when declarations do not fit the function.
	ErrSignature = errors.New("handler declarations do not match signature")
	// ErrCoercion is returned when an input value cannot become the
	// declared parameter type.
	ErrCoercion = errors.New("cannot coerce value")
	// ErrEnum is returned when no enum case matches a non-nullable parameter.
	ErrEnum = errors.New("invalid enum value")
	// ErrArgumentType is returned when a passed-through value cannot be
	// assigned to the declared parameter type.
	ErrArgumentType = errors.New("argument type mismatch")
)

// CoercionError names the parameter and target type of a failed coercion.
// Kind is ErrCoercion or ErrEnum.
type CoercionError struct {
	Kind  error
	Param string
	Type  string
	Value value.Value
}

func (e *CoercionError) Error() string {
	if errors.Is(e.Kind, ErrEnum) {
		return fmt.Sprintf("invalid value %s for enum %s in parameter %q", e.Value, e.Type, e.Param)
	}
	return fmt.Sprintf("cannot coerce parameter %q to %s (got %s)", e.Param, e.Type, e.Value)
}

func (e *CoercionError) Unwrap() error { return e.Kind }
