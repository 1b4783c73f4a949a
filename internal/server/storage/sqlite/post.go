package sqlite

import (
	"context"
	"fmt"

	"picfeed/internal/models"
)

// CreatePost stores a new post
func (s *Storage) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, caption, image_url, owner_username, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		post.ID,
		post.Caption,
		post.ImageURL,
		post.OwnerUsername,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// ListPosts returns posts ordered by creation time, newest first
func (s *Storage) ListPosts(ctx context.Context, skip, limit int) ([]models.Post, error) {
	query := `
		SELECT id, caption, image_url, owner_username, created_at
		FROM posts
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListPostsByOwner returns all posts of one user, newest first
func (s *Storage) ListPostsByOwner(ctx context.Context, username string) ([]models.Post, error) {
	query := `
		SELECT id, caption, image_url, owner_username, created_at
		FROM posts
		WHERE owner_username = ?
		ORDER BY created_at DESC, rowid DESC
	`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts by owner: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanPosts(rows rowScanner) ([]models.Post, error) {
	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(
			&post.ID,
			&post.Caption,
			&post.ImageURL,
			&post.OwnerUsername,
			&post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}
