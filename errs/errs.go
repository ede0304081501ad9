// Package errs defines the four error kinds every package in this
// repository fails with: an invalid-type error, an invalid-value error,
// a not-found error, and an out-of-range error. Callers distinguish
// them with errors.Is against the exported sentinels; operations wrap
// a sentinel with fmt.Errorf for context.
package errs

import "errors"

var (
	// ErrInvalidType marks a value of the wrong category: a non-numeric
	// string where a decimal was required, a non-integer index, an
	// unrecognised constructor argument.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidValue marks a value of the right category but an
	// illegal value: a negative depth, truncation enabled with no
	// depth cap, an unknown side name on a write.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotFound marks a missing key on a read or delete, or an
	// unknown side name on a read.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange marks a positional index outside [-n, n).
	ErrOutOfRange = errors.New("index out of range")
)
