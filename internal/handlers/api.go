// Package handlers implements the JSON API surface over the taxonomy
// and ledger services. Handlers decode requests, delegate to services,
// and map the error taxonomy onto HTTP status codes.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"plume/internal/apperr"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// respondError maps an application error to its HTTP status code.
// Unclassified errors become opaque 500s; the details stay in the log.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	case apperr.KindValidation:
		status = http.StatusBadRequest
		msg = err.Error()
	case apperr.KindConflict:
		status = http.StatusConflict
		msg = err.Error()
	case apperr.KindGateway:
		status = http.StatusBadGateway
		msg = err.Error()
	case apperr.KindUnauthorized:
		status = http.StatusForbidden
		msg = err.Error()
	default:
		slog.Error("request failed", "error", err)
	}

	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON decodes a request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}
