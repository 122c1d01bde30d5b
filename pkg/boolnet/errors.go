package boolnet

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a boolnet error the way §7 of the design describes:
// I/O and format/parse errors arriving from out-of-core collaborators,
// solver failures from the external propositional enumerator, semantic
// errors raised by the registry and rulebook, and a generic catch-all.
//
// The teacher scatters ad hoc error structs across constraint_types.go,
// fd.go, optimize.go and strategy.go, one per subsystem with no shared
// kind. dolthub-go-mysql-server instead layers causes through
// github.com/pkg/errors (engine.go); boolnet keeps one exported Kind enum
// and wraps causes with errors.Wrap, keeping the original failure
// reachable through Error.Unwrap.
type Kind int

const (
	// KindGeneric is a catch-all for conditions with no dedicated kind.
	KindGeneric Kind = iota
	// KindIO covers file open/read/write failures surfaced to the core.
	KindIO
	// KindFormat covers unsupported or unrecognized file formats.
	KindFormat
	// KindParse covers malformed numeric values, XML, or grammar rules.
	KindParse
	// KindSolver covers failures inside the propositional enumerator.
	KindSolver
	// KindMissingModel means a command expected a model context that is absent.
	KindMissingModel
	// KindUnknownComponent means a referenced component name is not registered.
	KindUnknownComponent
	// KindInvalidName means a name fails the registry's naming rules.
	KindInvalidName
	// KindNameAlreadyExists means a name collides with an existing registration.
	KindNameAlreadyExists
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindParse:
		return "parse"
	case KindSolver:
		return "solver"
	case KindMissingModel:
		return "missing-model"
	case KindUnknownComponent:
		return "unknown-component"
	case KindInvalidName:
		return "invalid-name"
	case KindNameAlreadyExists:
		return "name-already-exists"
	default:
		return "generic"
	}
}

// Error is the single error type returned by this module's public API.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
// errors.Cause from github.com/pkg/errors does not consult Unwrap, so
// called on an *Error it returns the *Error itself.
func (e *Error) Unwrap() error { return e.cause }

// newError builds a Kind-tagged error, optionally wrapping a cause with
// github.com/pkg/errors so callers can still recover a stack-annotated
// Cause() for diagnostics.
func newError(k Kind, cause error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	var wrapped error
	if cause != nil {
		wrapped = errors.Wrap(cause, msg)
	}
	return &Error{Kind: k, Message: msg, cause: wrapped}
}

// ErrMissingModel reports that a command expected a model context.
func ErrMissingModel() *Error {
	return newError(KindMissingModel, nil, "no model loaded")
}

// ErrUnknownComponent reports a reference to an unregistered component.
func ErrUnknownComponent(name string) *Error {
	return newError(KindUnknownComponent, nil, "unknown component %q", name)
}

// ErrInvalidName reports a name that fails the registry's naming rules.
func ErrInvalidName(name string) *Error {
	return newError(KindInvalidName, nil, "invalid name %q", name)
}

// ErrNameAlreadyExists reports a name collision during registration.
func ErrNameAlreadyExists(name string) *Error {
	return newError(KindNameAlreadyExists, nil, "name %q already exists", name)
}

// ErrSolver wraps a failure from the external propositional enumerator.
func ErrSolver(cause error, format string, args ...any) *Error {
	return newError(KindSolver, cause, format, args...)
}

// ErrGeneric wraps a condition that does not merit a dedicated kind.
func ErrGeneric(format string, args ...any) *Error {
	return newError(KindGeneric, nil, format, args...)
}
