package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrInvalidArgument indicates input the engine refuses to act on.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrDuplicateName indicates a group member name collision.
	ErrDuplicateName = errors.New("dynamo: duplicate name")
)

// ArgumentError wraps ErrInvalidArgument with the failing operation.
type ArgumentError struct {
	Op     string
	Field  string
	Value  any
	Reason string
}

// InvalidArgument builds an ArgumentError.
func InvalidArgument(op, field string, value any, reason string) *ArgumentError {
	return &ArgumentError{Op: op, Field: field, Value: value, Reason: reason}
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s %v: %s", e.Op, e.Field, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// DuplicateNameError is returned when a name is added twice to a group.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("dynamo: name %q already registered", e.Name)
}

func (e *DuplicateNameError) Unwrap() error {
	return ErrDuplicateName
}
