package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/escalopa/quran-reader/internal/domain"
)

// Envelope is the body of every JSON response
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, data any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Data: data, Success: status < 400}); err != nil {
		log.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Error: message}); err != nil {
		log.Error("encode error response", "error", err)
	}
}

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSurah),
		errors.Is(err, domain.ErrInvalidAyah),
		errors.Is(err, domain.ErrInvalidPage),
		errors.Is(err, domain.ErrInvalidSetting):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoActiveView):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrContentUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func handleError(w http.ResponseWriter, err error, log *slog.Logger) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("unhandled error", "error", err)
		writeError(w, status, "internal server error", log)
		return
	}
	writeError(w, status, err.Error(), log)
}
