package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jorgeberrex/mars-api/internal/leaderboard"
)

const (
	defaultBoardLimit = 10
	maxBoardLimit     = 50
)

// LeaderboardEntries serves the top entries for one public metric and
// period. Internal bookkeeping boards reject with 401 rather than 404 so
// their existence is not discoverable.
func (h *Handler) LeaderboardEntries(w http.ResponseWriter, r *http.Request) {
	scoreType, ok := leaderboard.ParseScoreType(chi.URLParam(r, "scoreType"))
	if !ok {
		h.errorResponse(w, ErrValidation, "Unknown score type")
		return
	}
	period, ok := leaderboard.ParsePeriod(chi.URLParam(r, "period"))
	if !ok {
		h.errorResponse(w, ErrValidation, "Unknown period")
		return
	}
	if !scoreType.IsPublic() {
		h.errorResponse(w, ErrUnauthorized, "Score type is not public")
		return
	}

	limit := defaultBoardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.errorResponse(w, ErrValidation, "Invalid limit")
			return
		}
		limit = parsed
	}
	if limit > maxBoardLimit {
		limit = maxBoardLimit
	}

	entries, err := h.boards.Board(scoreType).FetchTop(r.Context(), period, limit)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Leaderboard fetch failed")
		return
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	h.jsonResponse(w, http.StatusOK, entries)
}
