package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"finboard/internal/core"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message}})
}

// respondErr maps operational errors onto status codes. Anything outside the
// sentinel taxonomy is a 500 with the detail kept server-side.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", core.ErrMessage(err))
	case errors.Is(err, core.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", core.ErrMessage(err))
	case errors.Is(err, core.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", core.ErrMessage(err))
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
