package server

import (
	"encoding/json"
	"net/http"

	"github.com/emonshikder007/chat-app/pkg/errors"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Structured domain
// errors pass their code and message through; anything else becomes a 500
// with a generic body so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)

	var status int
	switch code {
	case errors.CodeInvalidArgument:
		status = http.StatusBadRequest
	case errors.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case errors.CodePermissionDenied:
		status = http.StatusForbidden
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeAlreadyExists:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
		if code == errors.CodeUnknown {
			code = errors.CodeInternal
		}
	}

	respondJSON(w, status, map[string]any{
		"code":    code,
		"message": msg,
	})
}
