package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/sagarc03/linkshelf"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// wantsJSON reports whether the client asked for JSON in its Accept header.
func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mt == "application/json" {
			return true
		}
	}
	return false
}

// WriteError writes an error response, JSON for JSON clients and an HTML
// page otherwise.
func WriteError(w http.ResponseWriter, r *http.Request, code int, errCode, message string) {
	if !wantsJSON(r) {
		writeErrorPage(w, code, message)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, linkshelf.ErrPathTraversal):
		// Reported as a plain 404 so probes learn nothing about the layout.
		slog.Warn("rejected path", "path", r.URL.EscapedPath(), "error", err)
		WriteError(w, r, http.StatusNotFound, "not_found", "Directory not found")
	case errors.Is(err, linkshelf.ErrMalformedPath):
		slog.Warn("request error", "error", err)
		WriteError(w, r, http.StatusBadRequest, "malformed_path", "Malformed path")
	case errors.Is(err, linkshelf.ErrInvalidInput):
		slog.Warn("request error", "error", err)
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "Invalid request")
	case errors.Is(err, linkshelf.ErrNotFound), errors.Is(err, linkshelf.ErrNotDirectory):
		slog.Debug("request error", "error", err)
		WriteError(w, r, http.StatusNotFound, "not_found", "Directory not found")
	default:
		slog.Error("request error", "error", err)
		WriteError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
