package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picfeed/internal/models"
	"picfeed/internal/server/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func newTestUser(username, email string) *models.User {
	return &models.User{
		ID:             uuid.New().String(),
		Username:       username,
		Email:          email,
		FullName:       "Test User",
		HashedPassword: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:      time.Now().UTC(),
	}
}

func TestCreateUser_AndGetByUsername(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	user := newTestUser("alice", "alice@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "Test User", got.FullName)
	assert.False(t, got.Disabled)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newTestUser("alice", "alice@example.com")))

	err := s.CreateUser(ctx, newTestUser("alice", "other@example.com"))
	assert.ErrorIs(t, err, storage.ErrUsernameTaken)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newTestUser("alice", "alice@example.com")))

	err := s.CreateUser(ctx, newTestUser("bob", "alice@example.com"))
	assert.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestCountUsers(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, s.CreateUser(ctx, newTestUser("alice", "alice@example.com")))
	require.NoError(t, s.CreateUser(ctx, newTestUser("bob", "bob@example.com")))

	count, err = s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPosts_ListNewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newTestUser("alice", "alice@example.com")))

	base := time.Now().UTC().Truncate(time.Second)
	for i, caption := range []string{"oldest", "middle", "newest"} {
		post := &models.Post{
			ID:            uuid.New().String(),
			Caption:       caption,
			ImageURL:      "https://img/" + caption + ".jpg",
			OwnerUsername: "alice",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.CreatePost(ctx, post))
	}

	posts, err := s.ListPosts(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Caption)
	assert.Equal(t, "oldest", posts[2].Caption)
}

func TestPosts_SkipAndLimit(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newTestUser("alice", "alice@example.com")))

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		post := &models.Post{
			ID:            uuid.New().String(),
			Caption:       string(rune('a' + i)),
			ImageURL:      "https://img/x.jpg",
			OwnerUsername: "alice",
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.CreatePost(ctx, post))
	}

	posts, err := s.ListPosts(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "d", posts[0].Caption)
	assert.Equal(t, "c", posts[1].Caption)
}

func TestPosts_ListByOwner(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newTestUser("alice", "alice@example.com")))
	require.NoError(t, s.CreateUser(ctx, newTestUser("bob", "bob@example.com")))

	now := time.Now().UTC()
	require.NoError(t, s.CreatePost(ctx, &models.Post{
		ID: uuid.New().String(), Caption: "from alice", ImageURL: "https://img/a.jpg",
		OwnerUsername: "alice", CreatedAt: now,
	}))
	require.NoError(t, s.CreatePost(ctx, &models.Post{
		ID: uuid.New().String(), Caption: "from bob", ImageURL: "https://img/b.jpg",
		OwnerUsername: "bob", CreatedAt: now,
	}))

	posts, err := s.ListPostsByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "from alice", posts[0].Caption)

	posts, err = s.ListPostsByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, posts)
}
