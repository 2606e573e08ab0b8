// Package http provides the HTTP handlers and routing for the SecurePass
// API.
package http

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Reason string `json:"reason"`
}

// toolResult is the uniform envelope for AI tool calls: either a payload or
// a reason, never an HTTP-level error.
type toolResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, errorResponse{Reason: reason})
}
