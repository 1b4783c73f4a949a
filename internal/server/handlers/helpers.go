package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"picfeed/pkg/api"
)

// contextKey is the type for request context keys set by middleware
type contextKey string

// UsernameKey carries the authenticated username through the request context
const UsernameKey contextKey = "username"

// sendJSON writes a JSON response with the given status code
func sendJSON(w http.ResponseWriter, logger *slog.Logger, payload any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// sendError writes the error body every endpoint uses: {"detail": "..."}
func sendError(w http.ResponseWriter, logger *slog.Logger, detail string, status int) {
	sendJSON(w, logger, api.ErrorResponse{Detail: detail}, status)
}
