package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means every cascade stage was exhausted without a result.
	// A legitimate terminal outcome, not a system fault.
	ErrNotFound = errors.New("no match found")

	// ErrNoData means the corpus has no approved entries for the language
	// pair at all; reported distinctly from ErrNotFound.
	ErrNoData = errors.New("no translation data available")

	// ErrStorageUnavailable means the data source could not be reached at a
	// stage with nowhere further to degrade to.
	ErrStorageUnavailable = errors.New("translation storage unavailable")
)

// ValidationError rejects a malformed request before any storage access
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// NotFoundError wraps ErrNotFound with low-threshold similarity suggestions
// for "did you mean" display
type NotFoundError struct {
	Suggestions []Alternative
}

func (e *NotFoundError) Error() string {
	return ErrNotFound.Error()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
