package resource

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is returned when a required manifest field is missing,
// empty or of the wrong type. It is raised before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid resource: %q %s", e.Field, e.Reason)
}

// NotFoundError is returned when a symbolic reference cannot be turned into
// coordinates
type NotFoundError struct {
	Ref         string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("resource %q not found: expected a known Kind or \"group/version:Kind\"", e.Ref)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(", did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// BackendError wraps a failure reported by the API server or the transport
type BackendError struct {
	Op          string
	Coordinates Coordinates
	Err         error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Coordinates, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsBackend reports whether err is or wraps a BackendError
func IsBackend(err error) bool {
	var target *BackendError
	return errors.As(err, &target)
}
