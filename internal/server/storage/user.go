package storage

import (
	"context"

	"picfeed/internal/models"
)

// UserStorage defines interface for user account persistence
type UserStorage interface {
	// CreateUser creates a new user.
	// Returns ErrUsernameTaken / ErrEmailTaken on unique constraint violations.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CountUsers returns the total number of registered users.
	CountUsers(ctx context.Context) (int, error)
}
