package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	clientapi "picfeed/internal/client/api"
	"picfeed/internal/client/storage"
	"picfeed/pkg/api"
)

// User-visible messages surfaced through State.Err.
const (
	MsgSessionExpired = "Session expired. Please login again."
	MsgLoginFailed    = "login failed"
	MsgRegisterFailed = "registration failed"
)

// Controller orchestrates login, registration and logout, and reconciles the
// credential store with the resolved profile. It is the sole writer of the
// current-user state.
type Controller struct {
	state   *State
	gateway clientapi.Gateway
	creds   storage.CredentialStore
	logger  *slog.Logger
}

// NewController creates a session controller over the shared state.
func NewController(state *State, gateway clientapi.Gateway, creds storage.CredentialStore, logger *slog.Logger) *Controller {
	return &Controller{
		state:   state,
		gateway: gateway,
		creds:   creds,
		logger:  logger,
	}
}

// Restore resolves a previously stored credential into a session on startup.
// With no stored credential it is a no-op; a credential the server rejects is
// deleted and surfaced as an expired session.
func (c *Controller) Restore(ctx context.Context) error {
	token, err := c.creds.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCredentialNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load credential: %w", err)
	}
	return c.resolve(ctx, token)
}

// Login authenticates and resolves the profile. The credential is persisted
// only after the server accepted the username/password pair.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if err := c.state.BeginFlow(); err != nil {
		return err
	}
	defer c.state.EndFlow()

	return c.login(ctx, username, password)
}

// login is the gate-free login used by both Login and the register chain.
func (c *Controller) login(ctx context.Context, username, password string) error {
	c.state.SetAuthenticating()

	tok, err := c.gateway.Authenticate(ctx, username, password)
	if err != nil {
		c.state.SetLoggedOut(messageOr(err, MsgLoginFailed))
		return fmt.Errorf("login failed: %w", err)
	}

	// The credential must be durable before the user becomes non-nil, so a
	// live session always has a stored credential behind it.
	if err := c.creds.Save(ctx, tok.AccessToken); err != nil {
		c.state.SetLoggedOut(MsgLoginFailed)
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return c.resolve(ctx, tok.AccessToken)
}

// resolve turns a credential into the current user. Shared by Restore and
// login. A rejected credential is deleted together with the user state; a
// transport failure keeps the credential so a later restart can retry.
func (c *Controller) resolve(ctx context.Context, token string) error {
	c.state.SetAuthenticating()
	epoch := c.state.Epoch()

	user, err := c.gateway.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, clientapi.ErrUnauthorized) {
			if delErr := c.creds.Delete(ctx); delErr != nil {
				c.logger.Warn("failed to delete rejected credential", "error", delErr)
			}
			c.state.ClearSession(MsgSessionExpired)
			return fmt.Errorf("session expired: %w", err)
		}
		c.state.SetLoggedOut(messageOr(err, MsgLoginFailed))
		return fmt.Errorf("failed to resolve user: %w", err)
	}

	if !c.state.EstablishSession(epoch, user, token) {
		// The session this resolution belonged to is gone (logout raced it).
		// Do not resurrect the credential either.
		if delErr := c.creds.Delete(ctx); delErr != nil {
			c.logger.Warn("failed to delete stale credential", "error", delErr)
		}
		return nil
	}

	c.logger.Info("session established", "username", user.Username)
	return nil
}

// Register creates the account and, only on success, chains straight into
// login with the same credentials. A failed registration never attempts the
// login step.
func (c *Controller) Register(ctx context.Context, username, password, email, fullName string) error {
	if err := c.state.BeginFlow(); err != nil {
		return err
	}
	defer c.state.EndFlow()

	req := api.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
		FullName: fullName,
	}
	if _, err := c.gateway.Register(ctx, req); err != nil {
		c.state.SetError(c.state.Epoch(), messageOr(err, MsgRegisterFailed))
		return fmt.Errorf("registration failed: %w", err)
	}

	return c.login(ctx, username, password)
}

// Logout is unconditional: it clears the credential, the user, both post
// collections and any error. It never calls the server and never fails from
// the caller's perspective.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.creds.Delete(ctx); err != nil {
		c.logger.Warn("failed to delete credential on logout", "error", err)
	}
	c.state.ClearSession("")
}

// messageOr returns the server's detail message when the failure carried one,
// or the given fallback.
func messageOr(err error, fallback string) string {
	if detail := clientapi.ErrorDetail(err); detail != "" {
		return detail
	}
	return fallback
}
