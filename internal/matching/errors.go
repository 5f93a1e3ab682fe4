// internal/matching/errors.go
package matching

import "errors"

var (
	// ErrInvalidInput is returned when the criteria cannot be matched at all, such as a
	// groom without a profession.
	ErrInvalidInput = errors.New("invalid match input")

	// ErrNoMatchFound is returned when no candidate is compatible.
	ErrNoMatchFound = errors.New("no compatible match found")

	errEmptyPool = errors.New("select from empty candidate set")
)
