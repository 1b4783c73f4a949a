package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"picfeed/internal/models"
	"picfeed/internal/server/storage"
	"picfeed/internal/validation"
	"picfeed/pkg/api"
)

const (
	defaultListLimit = 10
	maxListLimit     = 500
)

// PostsHandler serves the post endpoints
type PostsHandler struct {
	logger      *slog.Logger
	postStorage storage.PostStorage
}

// NewPostsHandler creates a new handler for posts
func NewPostsHandler(logger *slog.Logger, postStorage storage.PostStorage) *PostsHandler {
	return &PostsHandler{
		logger:      logger,
		postStorage: postStorage,
	}
}

// List handles GET /posts/.
// Public: returns all posts, newest first. skip/limit are optional query
// parameters.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", defaultListLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}

	posts, err := h.postStorage.ListPosts(ctx, skip, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list posts", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(w, h.logger, toAPIPosts(posts), http.StatusOK)
}

// ListOwn handles GET /posts/me/.
// Returns only the posts owned by the authenticated user.
func (h *PostsHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := ctx.Value(UsernameKey).(string)
	if !ok || username == "" {
		sendError(w, h.logger, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	posts, err := h.postStorage.ListPostsByOwner(ctx, username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list own posts", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(w, h.logger, toAPIPosts(posts), http.StatusOK)
}

// Create handles POST /posts/.
// The server assigns the post id, owner and creation time.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := ctx.Value(UsernameKey).(string)
	if !ok || username == "" {
		sendError(w, h.logger, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var req api.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create post request", slog.Any("error", err))
		sendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.RequireFields(
		[2]string{"caption", req.Caption},
		[2]string{"image_url", req.ImageURL},
	); err != nil {
		sendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	post := &models.Post{
		ID:            uuid.New().String(),
		Caption:       req.Caption,
		ImageURL:      req.ImageURL,
		OwnerUsername: username,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.postStorage.CreatePost(ctx, post); err != nil {
		h.logger.ErrorContext(ctx, "failed to create post", slog.Any("error", err))
		sendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "post created",
		slog.String("id", post.ID),
		slog.String("owner", username))

	sendJSON(w, h.logger, toAPIPost(*post), http.StatusOK)
}

func toAPIPost(post models.Post) api.Post {
	return api.Post{
		ID:            post.ID,
		Caption:       post.Caption,
		ImageURL:      post.ImageURL,
		OwnerUsername: post.OwnerUsername,
		CreatedAt:     post.CreatedAt,
	}
}

func toAPIPosts(posts []models.Post) []api.Post {
	out := make([]api.Post, 0, len(posts))
	for _, post := range posts {
		out = append(out, toAPIPost(post))
	}
	return out
}

// queryInt reads an integer query parameter with a default
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return def
	}
	return value
}
