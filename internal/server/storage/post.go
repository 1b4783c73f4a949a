package storage

import (
	"context"

	"picfeed/internal/models"
)

// PostStorage defines interface for post persistence
type PostStorage interface {
	// CreatePost stores a new post.
	CreatePost(ctx context.Context, post *models.Post) error

	// ListPosts returns posts ordered by creation time, newest first.
	ListPosts(ctx context.Context, skip, limit int) ([]models.Post, error)

	// ListPostsByOwner returns all posts of one user, newest first.
	ListPostsByOwner(ctx context.Context, username string) ([]models.Post, error)
}
