package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetMatch serves a match by id from the match cache. Matches live in
// Redis for the duration of play plus a retention window; there is no
// Mongo fallback for expired matches.
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.matches.Get(r.Context(), chi.URLParam(r, "matchId"))
	if err != nil {
		h.errorResponse(w, ErrValidation, "Match lookup failed")
		return
	}
	if match == nil {
		h.errorResponse(w, ErrValidation, "No such match")
		return
	}
	h.jsonResponse(w, http.StatusOK, match)
}
