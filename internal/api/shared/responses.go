// Package shared holds the response envelope and context helpers used by the
// API handlers and middleware.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response shape for every route: a human-readable
// message plus optional payload. Error conditions are distinguished by the
// message string (and, on top of that, by the status code).
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithMessage writes an envelope carrying only a message.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, Envelope{Message: message})
}

// RespondWithData writes an envelope carrying a message and a payload.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	RespondWithJSON(w, r, status, Envelope{Message: message, Data: data})
}

// RespondWithError writes an error envelope and logs it with the request's
// trace ID for correlation. The raw error never reaches the client.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	traceID := GetTraceID(r.Context())

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	attrs := []any{
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method,
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	slog.Log(r.Context(), level, "API error response", attrs...)

	RespondWithMessage(w, r, status, message)
}
