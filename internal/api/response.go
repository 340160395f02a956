package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/swiftship/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response with a code derived from status.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, errorBody{Error: message, Code: codeForStatus(status)})
}

// serviceError maps a service error onto its HTTP status and error code.
// Anything unrecognised is logged and reported as a 500.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		jsonResponse(w, http.StatusBadRequest, errorBody{Error: ve.Error(), Code: "ValidationError", Field: ve.Field})
	case errors.Is(err, service.ErrNotVerified):
		jsonResponse(w, http.StatusForbidden, errorBody{Error: err.Error(), Code: "NotVerified"})
	case errors.Is(err, service.ErrForbidden):
		jsonResponse(w, http.StatusForbidden, errorBody{Error: "insufficient permissions", Code: "Forbidden"})
	case errors.Is(err, service.ErrNotFound):
		jsonResponse(w, http.StatusNotFound, errorBody{Error: err.Error(), Code: "NotFound"})
	case errors.Is(err, service.ErrAccountNotFound):
		jsonResponse(w, http.StatusNotFound, errorBody{Error: err.Error(), Code: "AccountNotFound"})
	case errors.Is(err, service.ErrInvalidStatus):
		jsonResponse(w, http.StatusBadRequest, errorBody{Error: err.Error(), Code: "InvalidStatus"})
	case errors.Is(err, service.ErrEmailTaken):
		jsonResponse(w, http.StatusConflict, errorBody{Error: err.Error(), Code: "EmailTaken"})
	case errors.Is(err, service.ErrInvalidCredentials):
		jsonResponse(w, http.StatusUnauthorized, errorBody{Error: err.Error(), Code: "InvalidCredentials"})
	case errors.Is(err, service.ErrInvalidToken):
		jsonResponse(w, http.StatusBadRequest, errorBody{Error: err.Error(), Code: "InvalidToken"})
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BadRequest"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "NotFound"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusRequestEntityTooLarge:
		return "TooLarge"
	default:
		return "ExternalServiceError"
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
