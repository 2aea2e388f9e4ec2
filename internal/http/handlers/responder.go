package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/minac/nba-most-engaging-game-of-the-week/internal/http/middleware"
	"github.com/minac/nba-most-engaging-game-of-the-week/internal/logging"
)

// envelope is the response shape shared by every API route.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Count     *int   `json:"count,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeData(w http.ResponseWriter, data any, logger *slog.Logger) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data}, logger)
}

func writeList(w http.ResponseWriter, data any, count int, logger *slog.Logger) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count}, logger)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger *slog.Logger) {
	writeJSON(w, status, envelope{
		Success:   false,
		Error:     message,
		ErrorCode: code,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	}, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
