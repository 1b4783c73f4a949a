package validation

import (
	"errors"
	"strings"
)

// Error marks a client-side validation failure. Callers must not issue any
// network request for the operation that produced one.
type Error struct {
	Field string
}

func (e *Error) Error() string {
	return e.Field + " is required"
}

// IsValidationError reports whether err (or anything it wraps) is a
// validation failure.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// RequireField checks that a required field is non-empty. Whitespace-only
// values count as empty.
func RequireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Error{Field: name}
	}
	return nil
}

// RequireFields checks the given name/value pairs in order and returns the
// first missing one.
func RequireFields(pairs ...[2]string) error {
	for _, p := range pairs {
		if err := RequireField(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}
