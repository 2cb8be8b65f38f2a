// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gistrelay/gistrelay/internal/handler/dto"
)

// Handler wraps fallback handlers for unmatched routes.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// NotFound handles 404 responses. This is also what a request with an
// empty username path (GET /) resolves to: the router never invokes the
// gist handler, so no outbound call is made.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Connection-level failure; nothing left to send the client.
		_ = err
	}
}

// writeError writes an error response in the {"detail": ...} shape.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, dto.ErrorResponse{Detail: detail})
}
