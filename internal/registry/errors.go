package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateComponent is returned by Add when a component with the
	// same name is already registered.
	ErrDuplicateComponent = errors.New("component already registered")

	// ErrComponentNotFound is returned by Update when no component with the
	// given name is registered.
	ErrComponentNotFound = errors.New("component not registered")

	// ErrInvalidComponent is returned for nil components or empty names.
	ErrInvalidComponent = errors.New("invalid component")

	// ErrMissingRequirement is returned by Validate when a component's
	// required component is absent.
	ErrMissingRequirement = errors.New("required component missing")
)

// ConflictError describes a duplicate Add.
type ConflictError struct {
	Name     string
	Existing string // Go type of the registered component
	Incoming string // Go type of the rejected component
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("component %q already registered as %s, refusing %s (use Update to override)", e.Name, e.Existing, e.Incoming)
}

func (e *ConflictError) Unwrap() error { return ErrDuplicateComponent }
