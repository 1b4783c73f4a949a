package server

import (
	"log/slog"
	"net/http"

	"picfeed/internal/server/handlers"
	"picfeed/internal/server/jwt"
	"picfeed/internal/server/middleware"
	"picfeed/internal/server/storage"
)

// NewRouter builds the full HTTP handler for the server: routes, auth
// protection and the common middleware chain.
func NewRouter(
	logger *slog.Logger,
	userStorage storage.UserStorage,
	postStorage storage.PostStorage,
	jwtService *jwt.Service,
) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, userStorage, jwtService)
	usersHandler := handlers.NewUsersHandler(logger, userStorage)
	postsHandler := handlers.NewPostsHandler(logger, postStorage)
	healthHandler := handlers.NewHealthHandler(logger)

	requireAuth := middleware.AuthMiddleware(logger, jwtService)
	loginLimiter := middleware.NewRateLimiter(logger, 1, 5)

	mux := http.NewServeMux()

	mux.Handle("POST /token", loginLimiter.Middleware(http.HandlerFunc(authHandler.Token)))
	mux.HandleFunc("POST /register", authHandler.Register)

	mux.Handle("GET /users/me/", requireAuth(http.HandlerFunc(usersHandler.Me)))

	mux.HandleFunc("GET /posts/", postsHandler.List)
	mux.Handle("GET /posts/me/", requireAuth(http.HandlerFunc(postsHandler.ListOwn)))
	mux.Handle("POST /posts/", requireAuth(http.HandlerFunc(postsHandler.Create)))

	mux.HandleFunc("GET /health", healthHandler.Health)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return handler
}
