package backend

import (
	"errors"
	"fmt"
)

// RequestError represents a failed call to the policy backend.
// It includes the operation, HTTP status code, and underlying error.
type RequestError struct {
	// Op is the logical operation ("save_draft", "deploy", "lint", ...).
	Op string

	// StatusCode is the HTTP status code (0 if the request never completed).
	StatusCode int

	// Message is the error message.
	Message string

	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend %s failed (status %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// AuthRequired reports whether the error is a 401/403-class response. The
// builder degrades on these (disables dependent controls) instead of
// retrying.
func AuthRequired(err error) bool {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == 401 || reqErr.StatusCode == 403
	}
	return false
}
