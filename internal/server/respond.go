package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"pantry/internal/respond"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// negotiate writes the representation picked by the format map and
// translates negotiation failures into HTTP errors.
func negotiate(w http.ResponseWriter, r *http.Request, status int, m respond.Map) {
	err := respond.To(w, r, status, m)
	switch {
	case err == nil:
	case errors.Is(err, respond.ErrNotAcceptable):
		jsonError(w, http.StatusNotAcceptable, "not acceptable")
	default:
		slog.Error("failed to write response", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// renderHTML writes a page unconditionally, outside negotiation.
func renderHTML(w http.ResponseWriter, status int, page respond.Page) {
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		slog.Error("failed to render page", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write page response", "error", err)
	}
}
