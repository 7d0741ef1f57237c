package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// ErrorResponse represents a standard JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
}

// WriteJSONError writes a JSON error response with the given status code and message
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeError(w, statusCode, message, "")
}

// WriteStorageError writes err as a JSON error response, choosing the status
// code from the error kind
func WriteStorageError(w http.ResponseWriter, err error) {
	writeError(w, StatusForError(err), err.Error(), domain.KindOf(err))
}

// StatusForError maps a storage error to an HTTP status code
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, domain.ErrMalformedPayload),
		errors.Is(err, domain.ErrInvalidCondition),
		errors.Is(err, domain.ErrInvalidAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, statusCode int, message, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
		Kind:    kind,
	}

	json.NewEncoder(w).Encode(response)
}
