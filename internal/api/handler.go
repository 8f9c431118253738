// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ksalp/lernportal/internal/auth"
	"github.com/ksalp/lernportal/internal/store"
	"github.com/ksalp/lernportal/internal/wire"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store  *store.SQLiteStore
	issuer *auth.Issuer
	logger *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s *store.SQLiteStore, issuer *auth.Issuer, logger *slog.Logger) *Handler {
	return &Handler{
		store:  s,
		issuer: issuer,
		logger: logger,
	}
}

// validator is implemented by request bodies that check their own fields.
type validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes the {"error", "message"} body clients expect.
func respondError(w http.ResponseWriter, status int, errKey, message string) {
	respondJSON(w, status, wire.ErrorResponse{Error: errKey, Message: message})
}

// decodeAndValidate parses the JSON body into v and validates it.
// Both failures answer 415. Returns false if a response was written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusUnsupportedMediaType, "json parse error", "JSON object could not be parsed.")
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusUnsupportedMediaType, "missing fields", err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found", "The requested "+entity+" could not be found.")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error", "An internal error occurred.")
	return true
}
