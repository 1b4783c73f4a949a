package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"picfeed/internal/server/handlers"
	"picfeed/internal/server/jwt"
)

const unauthorizedBody = `{"detail":"Could not validate credentials"}`

// AuthMiddleware validates the bearer token and puts the username it was
// issued for into the request context.
func AuthMiddleware(logger *slog.Logger, jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("invalid Authorization header format")
				unauthorized(w)
				return
			}

			username, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				logger.Warn("invalid access token", "error", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UsernameKey, username)

			logger.Debug("user authenticated", "username", username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}
