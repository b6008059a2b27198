package fetch

import (
	"errors"
	"fmt"
)

// Error is returned when a GET exhausted its retry budget. It is a
// terminal failure: the caller must abort the current run rather than
// advance past unfetched content.
type Error struct {
	// URL is the request that failed.
	URL string
	// Attempts is the total number of attempts made.
	Attempts int
	// Cause is the error from the final attempt.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsTerminal reports whether err (or anything it wraps) is an exhausted
// fetch. Terminal errors stop the run; anything else is a per-item
// failure the orchestrator may skip.
func IsTerminal(err error) bool {
	var fetchErr *Error
	return errors.As(err, &fetchErr)
}
