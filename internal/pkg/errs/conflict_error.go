package errs

import (
	"errors"
	"fmt"
)

var ErrConflict = errors.New("conflict")

// ConflictError means the row changed between read and write. Callers retry
// with fresh state.
type ConflictError struct {
	Entity string
	ID     any
	Cause  error
}

func NewConflictError(entity string, id any) *ConflictError {
	return &ConflictError{Entity: entity, ID: id}
}

func NewConflictErrorWithCause(entity string, id any, cause error) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s was modified concurrently", ErrConflict, e.Entity, sanitize(e.ID)), e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
