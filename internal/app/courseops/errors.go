// internal/app/courseops/errors.go
package courseops

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means the caller is not a signed-in admin. No read or
// write happened.
var ErrUnauthorized = errors.New("admin role required")

// ErrNotFound means a referenced grade, subject, or resource no longer
// exists, typically because another admin deleted it first.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or malformed input field. It is raised
// before any store access.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Msg: "is required"}
	}
	return nil
}
