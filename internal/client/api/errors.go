package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized marks a request the server rejected with 401, either bad
// login credentials or an invalid or expired bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is returned for any non-2xx response. Detail carries the
// server's human-readable message when the body contained one.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server error (%d): %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("request failed with status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// ErrorDetail extracts the server-provided message from err, or "" when the
// failure carried none (transport errors, empty bodies).
func ErrorDetail(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}
