package web

// errors.go provides unified error response handling for the web layer.
//
// All errors are logged with full technical details server-side and returned
// to clients as user-friendly messages with action suggestions, formatted as
// JSON for API routes and plain text otherwise. The user message comes from
// core.MapError, which attaches a support code to every error category.

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/csvmerge/csvmerge/internal/core"
	"github.com/csvmerge/csvmerge/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action)
// fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns a response in the
// format the client expects.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := errStatus(err)
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
	} else {
		http.Error(w, userMsg.Message+" ("+userMsg.Code+")", statusCode)
	}
}

// errStatus maps core error kinds to HTTP status codes. Configuration and
// input-shape problems are client errors; schema and decode failures are
// unprocessable uploads; everything else is a server fault.
func errStatus(err error) int {
	var usage *core.UsageError
	if errors.As(err, &usage) {
		return http.StatusBadRequest
	}
	var schema *core.SchemaMismatchError
	if errors.As(err, &schema) {
		return http.StatusUnprocessableEntity
	}
	var decode *core.DecodeError
	if errors.As(err, &decode) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// writeError writes a plain JSON error without going through MapError.
// Used for transport-level failures (rate limiting, missing form fields).
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON success response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
