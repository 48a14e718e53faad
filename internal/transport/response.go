package transport

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope every handler writes: a human
// message plus optional field-to-tag details for rejected input.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// WriteValidationError rejects a request with field-level detail. Nothing
// was persisted when this is written.
func WriteValidationError(w http.ResponseWriter, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "validation error", details)
}

// WriteNotFound reports a no-result outcome, which callers must be able
// to tell apart from a bad request.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, nil)
}

// WriteServerError hides store internals behind one generic message.
func WriteServerError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "database error", nil)
}
