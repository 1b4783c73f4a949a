package view

import (
	"context"
	"fmt"
	"log/slog"

	clientapi "picfeed/internal/client/api"
	"picfeed/internal/client/session"
)

// User-visible messages for failed collection loads.
const (
	MsgFeedLoadFailed     = "failed to load feed"
	MsgOwnPostsLoadFailed = "failed to load your posts"
)

// Synchronizer reloads the remote collections in response to explicit
// session and navigation events. It owns the feed and own-posts collections
// inside the shared state; both are replaced wholesale on every refresh.
type Synchronizer struct {
	state   *session.State
	gateway clientapi.Gateway
	logger  *slog.Logger
}

// NewSynchronizer creates a view synchronizer over the shared state.
func NewSynchronizer(state *session.State, gateway clientapi.Gateway, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		state:   state,
		gateway: gateway,
		logger:  logger,
	}
}

// EnterSection records the new active section and loads whatever it shows.
// Re-entering a section always re-fetches; there is no staleness check.
func (s *Synchronizer) EnterSection(ctx context.Context, section session.Section) error {
	s.state.SetSection(section)
	return s.Refresh(ctx, section)
}

// SessionEstablished loads the collection behind the current section after a
// login or a restored session.
func (s *Synchronizer) SessionEstablished(ctx context.Context) error {
	return s.Refresh(ctx, s.state.ActiveSection())
}

// Refresh fetches the collection the given section shows. Without a session
// nothing is fetched. A failed fetch surfaces an error and leaves the
// previous collection untouched; a result landing after the session ended is
// dropped.
func (s *Synchronizer) Refresh(ctx context.Context, section session.Section) error {
	_, token, ok := s.state.Session()
	if !ok {
		return nil
	}
	epoch := s.state.Epoch()

	switch section {
	case session.SectionFeed:
		posts, err := s.gateway.ListFeed(ctx)
		if err != nil {
			s.state.SetError(epoch, MsgFeedLoadFailed)
			return fmt.Errorf("failed to refresh feed: %w", err)
		}
		if !s.state.ReplaceFeed(epoch, posts) {
			s.logger.Debug("dropped stale feed result")
		}

	case session.SectionProfile:
		posts, err := s.gateway.ListOwnPosts(ctx, token)
		if err != nil {
			s.state.SetError(epoch, MsgOwnPostsLoadFailed)
			return fmt.Errorf("failed to refresh own posts: %w", err)
		}
		if !s.state.ReplaceOwnPosts(epoch, posts) {
			s.logger.Debug("dropped stale own-posts result")
		}

	case session.SectionCreate:
		// nothing to load
	}

	return nil
}

// RefreshAll reloads both collections. Used after a successful post
// submission, which may have invalidated either one.
func (s *Synchronizer) RefreshAll(ctx context.Context) error {
	if err := s.Refresh(ctx, session.SectionFeed); err != nil {
		return err
	}
	return s.Refresh(ctx, session.SectionProfile)
}
