// Package respond writes JSON responses and turns errors into safe client
// messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"blogful/internal/domain/entity"
	"blogful/internal/observability/logging"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error" example:"not found"`
}

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already sent
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes {"error": err.Error()} with the given status code.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// NotFound writes a 404 with a fixed message.
func NotFound(w http.ResponseWriter) {
	JSON(w, http.StatusNotFound, ErrorBody{Error: "not found"})
}

// SafeError writes err for the client. Client errors (4xx) carry their
// message; server errors are logged on the request's logger with secrets
// masked and answered with a generic message.
func SafeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	if err == nil {
		return
	}
	if code < http.StatusInternalServerError {
		Error(w, code, err)
		return
	}
	logging.FromContext(r.Context()).Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", logging.SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: "internal server error"})
}

// StatusFor maps domain errors to an HTTP status. Unknown errors are 500.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrConstraintViolation),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err with the status chosen by StatusFor.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	SafeError(w, r, StatusFor(err), err)
}
