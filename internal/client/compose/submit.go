package compose

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	clientapi "picfeed/internal/client/api"
	"picfeed/internal/client/session"
	"picfeed/internal/client/view"
	"picfeed/internal/validation"
	"picfeed/pkg/api"
)

// MsgCreateFailed is surfaced when the server rejects a submission.
const MsgCreateFailed = "failed to create post"

// ErrNotLoggedIn is returned when a post is submitted without a session.
var ErrNotLoggedIn = errors.New("not logged in")

// Flow validates and submits a new post, then reloads the two collections
// the post may appear in. Caption and image URL are required; nothing is
// sent until both are present.
type Flow struct {
	state   *session.State
	gateway clientapi.Gateway
	view    *view.Synchronizer
	logger  *slog.Logger
}

// NewFlow creates a post submission flow over the shared state.
func NewFlow(state *session.State, gateway clientapi.Gateway, sync *view.Synchronizer, logger *slog.Logger) *Flow {
	return &Flow{
		state:   state,
		gateway: gateway,
		view:    sync,
		logger:  logger,
	}
}

// Submit publishes a new post. On success both collections are refreshed so
// the post shows up wherever the server ordered it; on failure the caller
// keeps its draft for retry.
func (f *Flow) Submit(ctx context.Context, caption, imageURL string) (*api.Post, error) {
	if err := validation.RequireFields(
		[2]string{"caption", caption},
		[2]string{"image_url", imageURL},
	); err != nil {
		f.state.SetError(f.state.Epoch(), err.Error())
		return nil, err
	}

	_, token, ok := f.state.Session()
	if !ok {
		return nil, ErrNotLoggedIn
	}

	if err := f.state.BeginFlow(); err != nil {
		return nil, err
	}
	defer f.state.EndFlow()

	epoch := f.state.Epoch()
	post, err := f.gateway.CreatePost(ctx, token, api.CreatePostRequest{
		Caption:  caption,
		ImageURL: imageURL,
	})
	if err != nil {
		f.state.SetError(epoch, MsgCreateFailed)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	f.state.SetError(epoch, "")
	f.logger.Info("post created", "id", post.ID)

	// The new post invalidates both the feed and the own-posts collection.
	if err := f.view.RefreshAll(ctx); err != nil {
		f.logger.Warn("failed to refresh collections after post", "error", err)
	}

	return post, nil
}
