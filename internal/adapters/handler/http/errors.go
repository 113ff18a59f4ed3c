package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/playervote/internal/core/domain"
)

const (
	codeConflict        = "CONFLICT"
	codeNotFound        = "NOT_FOUND"
	codeForbidden       = "FORBIDDEN"
	codeUnauthorized    = "UNAUTHORIZED"
	codeBadRequest      = "BAD_REQUEST"
	codeInternal        = "INTERNAL_SERVER_ERROR"
	internalFailureText = "an unexpected error occurred, please try again later"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeError maps domain errors onto the JSON error envelope. Unknown errors
// are logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyVoted):
		writeErrorCode(w, http.StatusConflict, codeConflict, domain.ErrAlreadyVoted.Error())
	case errors.Is(err, domain.ErrPlayerNotFound):
		writeErrorCode(w, http.StatusNotFound, codeNotFound, domain.ErrPlayerNotFound.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeErrorCode(w, http.StatusForbidden, codeForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorCode(w, http.StatusUnauthorized, codeUnauthorized, domain.ErrUnauthorized.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeErrorCode(w, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorCode(w, http.StatusInternalServerError, codeInternal, internalFailureText)
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeErrorCode(w, http.StatusBadRequest, codeBadRequest, message)
}
