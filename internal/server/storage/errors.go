package storage

import "errors"

// Common server storage errors
var (
	// ErrUserNotFound indicates that user was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates a duplicate username on registration
	ErrUsernameTaken = errors.New("username already registered")

	// ErrEmailTaken indicates a duplicate email on registration
	ErrEmailTaken = errors.New("email already registered")

	// ErrPostNotFound indicates that post was not found
	ErrPostNotFound = errors.New("post not found")
)
