package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"picfeed/internal/models"
	"picfeed/internal/server/jwt"
	"picfeed/internal/server/storage"
	"picfeed/internal/validation"
	"picfeed/pkg/api"
)

// AuthHandler serves the token and registration endpoints
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	jwtService  *jwt.Service
}

// NewAuthHandler creates a new handler for authentication
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, jwtService *jwt.Service) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		jwtService:  jwtService,
	}
}

// Token handles POST /token.
// OAuth2 password flow: credentials arrive form-encoded, not as JSON.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.logger.WarnContext(ctx, "failed to parse token form", slog.Any("error", err))
		sendError(w, h.logger, "invalid form data", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(w, h.logger, "Incorrect username or password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		h.logger.WarnContext(ctx, "login failed: bad password", slog.String("username", username))
		sendError(w, h.logger, "Incorrect username or password", http.StatusUnauthorized)
		return
	}

	if user.Disabled {
		sendError(w, h.logger, "Inactive user", http.StatusBadRequest)
		return
	}

	tokenString, err := h.jwtService.GenerateAccessToken(user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user authenticated", slog.String("username", username))

	sendJSON(w, h.logger, api.Token{AccessToken: tokenString, TokenType: "bearer"}, http.StatusOK)
}

// Register handles POST /register.
// Creates the account only; it does not issue a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.RequireFields(
		[2]string{"username", req.Username},
		[2]string{"password", req.Password},
		[2]string{"email", req.Email},
	); err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:             uuid.New().String(),
		Username:       req.Username,
		Email:          req.Email,
		FullName:       req.FullName,
		HashedPassword: string(hashed),
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrUsernameTaken):
			sendError(w, h.logger, "Username already registered", http.StatusBadRequest)
		case errors.Is(err, storage.ErrEmailTaken):
			sendError(w, h.logger, "Email already registered", http.StatusBadRequest)
		default:
			h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
			sendError(w, h.logger, "Registration failed", http.StatusBadRequest)
		}
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	sendJSON(w, h.logger, api.User{
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Disabled: user.Disabled,
	}, http.StatusOK)
}
