package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"picfeed/internal/server/storage"
	"picfeed/pkg/api"
)

// UsersHandler serves the current-user endpoint
type UsersHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
}

// NewUsersHandler creates a new handler for user profiles
func NewUsersHandler(logger *slog.Logger, userStorage storage.UserStorage) *UsersHandler {
	return &UsersHandler{
		logger:      logger,
		userStorage: userStorage,
	}
}

// Me handles GET /users/me/.
// The username comes from the bearer token via the auth middleware.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := ctx.Value(UsernameKey).(string)
	if !ok || username == "" {
		sendError(w, h.logger, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// token valid but the account is gone
			sendError(w, h.logger, "Could not validate credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(w, h.logger, api.User{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Disabled: user.Disabled,
	}, http.StatusOK)
}
