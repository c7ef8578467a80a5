package errs

import (
	"errors"
	"fmt"
)

var ErrPermissionDenied = errors.New("permission denied")

type PermissionDeniedError struct {
	Action string
	Cause  error
}

func NewPermissionDeniedError(action string) *PermissionDeniedError {
	return &PermissionDeniedError{Action: action}
}

func NewPermissionDeniedErrorWithCause(action string, cause error) *PermissionDeniedError {
	return &PermissionDeniedError{Action: action, Cause: cause}
}

func (e *PermissionDeniedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPermissionDenied, e.Action), e.Cause)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}
