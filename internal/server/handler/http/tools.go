package http

import (
	"encoding/json"
	"net/http"

	"github.com/securepass/securepass/internal/ai"
)

// ToolsHandler exposes the four AI security tools. Failures are reported in
// the uniform {success:false, reason} envelope rather than HTTP errors; the
// tools are never fatal and the user simply retries.
type ToolsHandler struct {
	Tools *ai.Tools
}

func decodeTool[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusOK, toolResult{Success: false, Reason: "invalid request"})
		return in, false
	}
	return in, true
}

func writeToolResult(w http.ResponseWriter, data any, err error, failure string) {
	if err != nil {
		writeJSON(w, http.StatusOK, toolResult{Success: false, Reason: failure})
		return
	}
	writeJSON(w, http.StatusOK, toolResult{Success: true, Data: data})
}

// GeneratePassword runs the password generation tool.
func (h *ToolsHandler) GeneratePassword(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeTool[ai.GeneratePasswordInput](w, r)
	if !ok {
		return
	}
	out, err := h.Tools.GeneratePassword(r.Context(), in)
	writeToolResult(w, out, err, "Failed to generate password.")
}

// AnalyzePassword runs the strength analysis tool.
func (h *ToolsHandler) AnalyzePassword(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeTool[ai.AnalyzeStrengthInput](w, r)
	if !ok {
		return
	}
	out, err := h.Tools.AnalyzeStrength(r.Context(), in)
	writeToolResult(w, out, err, "Failed to analyze password.")
}

// DetectPhishing runs the phishing classification tool.
func (h *ToolsHandler) DetectPhishing(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeTool[ai.DetectPhishingInput](w, r)
	if !ok {
		return
	}
	out, err := h.Tools.DetectPhishing(r.Context(), in)
	writeToolResult(w, out, err, "Failed to detect phishing.")
}

// DarkWeb runs the dark-web monitoring tool. The API key is required.
func (h *ToolsHandler) DarkWeb(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeTool[ai.MonitorDarkWebInput](w, r)
	if !ok {
		return
	}
	if in.APIKey == "" {
		writeJSON(w, http.StatusOK, toolResult{Success: false, Reason: "API Key is required."})
		return
	}
	out, err := h.Tools.MonitorDarkWeb(r.Context(), in)
	writeToolResult(w, out, err, "Failed to monitor dark web.")
}
