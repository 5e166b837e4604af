package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an ID, filter or statistics window matches no coils.
	ErrNotFound = errors.New("coil not found")
	// ErrNoCoilsInPeriod is the ErrNotFound variant for an empty statistics window.
	ErrNoCoilsInPeriod = fmt.Errorf("no coils in period: %w", ErrNotFound)
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a write that would break a coil invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
