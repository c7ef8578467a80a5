// Package errs provides standardized error types for the logistics backend.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid, including rejected status transitions
//   - ValueIsOutOfRangeError: For numeric values outside of their allowed bounds
//   - ObjectNotFoundError: For when an order, rider or transaction cannot be found
//   - ConflictError: For when a concurrent write has won the race for the same row
//   - PermissionDeniedError: For when the acting user lacks the capability for an operation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is can classify the failure
//
// The required, invalid and out-of-range errors together form the validation family,
// see IsValidation.
package errs
