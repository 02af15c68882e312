package descriptor

import (
	"errors"
	"fmt"

	"github.com/ArielEspinoza07/console-forge/pkg/handler"
)

// Argument validation failures.
var (
	ErrInvalidArgumentName      = errors.New("invalid argument name")
	ErrRequiredArgHasDefault    = errors.New("required argument cannot have a default")
	ErrArrayDefaultTypeMismatch = errors.New("array argument default must be a list or null")
	ErrNonArrayDefaultIsArray   = errors.New("non-array argument default cannot be a list")
)

// Option validation failures.
var (
	ErrInvalidOptionName              = errors.New("invalid option name")
	ErrInvalidOptionShortcut          = errors.New("invalid option shortcut")
	ErrNegatableOptionAcceptsValue    = errors.New("negatable option cannot accept a value")
	ErrNegatableOptionIsArray         = errors.New("negatable option cannot be an array")
	ErrArrayOptionMustAcceptValue     = errors.New("array option must accept a value")
	ErrValueNoneOptionHasDefault      = errors.New("option without value must have a null default")
	ErrArrayOptionDefaultTypeMismatch = errors.New("array option default must be a list or null")
	ErrNonArrayOptionDefaultIsArray   = errors.New("non-array option default cannot be a list")
)

// Command validation failures.
var (
	ErrInvalidCommandName     = errors.New("invalid command name")
	ErrNilArgument            = errors.New("argument cannot be nil")
	ErrDuplicateArgument      = errors.New("duplicate argument")
	ErrMultipleArrayArguments = errors.New("only one array argument is allowed")
	ErrArrayArgumentNotLast   = errors.New("array argument must be the last argument")
	ErrRequiredAfterOptional  = errors.New("required argument cannot follow an optional one")
	ErrNilOption              = errors.New("option cannot be nil")
	ErrDuplicateOption        = errors.New("duplicate option")
	ErrDuplicateShortcut      = errors.New("duplicate option shortcut")
	ErrInvalidHandler         = handler.ErrInvalidHandler
	ErrExtraKeyNotString      = errors.New("extra keys must be strings")
)

// Error reports which invariant a descriptor violated and for which field.
// Kind is one of the sentinel errors above; errors.Is matches against it
// and against Cause when set.
type Error struct {
	Kind    error
	Subject string
	Detail  string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && errors.Is(e.Cause, e.Kind) {
		return fmt.Sprintf("%s: %s", e.Subject, e.Cause)
	}
	msg := e.Kind.Error()
	if e.Subject != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.Subject)
	}
	switch {
	case e.Detail != "":
		msg += ": " + e.Detail
	case e.Cause != nil:
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, subject string) *Error {
	return &Error{Kind: kind, Subject: subject}
}

func newErrorf(kind error, subject, format string, args ...any) *Error {
	return &Error{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}
