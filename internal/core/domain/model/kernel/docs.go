// Package kernel provides the shared domain primitives of the logistics backend.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Coordinates: A latitude/longitude pair with great-circle distance
//
// Both are immutable and safe for concurrent use. Their zero values are invalid
// and fail Validate.
package kernel
