package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jorgeberrex/mars-api/internal/models"
)

func (h *Handler) ListRanks(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.store.AllRanks(r.Context())
	if err != nil {
		h.errorResponse(w, ErrValidation, "Rank lookup failed")
		return
	}
	if ranks == nil {
		ranks = []models.Rank{}
	}
	h.jsonResponse(w, http.StatusOK, ranks)
}

type RankRequest struct {
	Name        string   `json:"name" validate:"required"`
	DisplayName *string  `json:"displayName"`
	Prefix      *string  `json:"prefix"`
	Priority    int      `json:"priority"`
	Permissions []string `json:"permissions"`
	Staff       bool     `json:"staff"`
	ApplyOnJoin bool     `json:"applyOnJoin"`
}

// CreateRank inserts a new rank; names are unique case-insensitively.
func (h *Handler) CreateRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	existing, err := h.store.RankByName(ctx, req.Name)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Rank lookup failed")
		return
	}
	if existing != nil {
		h.errorResponse(w, ErrRankConflict, "A rank with this name already exists")
		return
	}

	rank := &models.Rank{
		ID:          uuid.New().String(),
		Name:        req.Name,
		NameLower:   lower(req.Name),
		DisplayName: req.DisplayName,
		Prefix:      req.Prefix,
		Priority:    req.Priority,
		Permissions: dedup(req.Permissions),
		Staff:       req.Staff,
		ApplyOnJoin: req.ApplyOnJoin,
		CreatedAt:   nowMillis(),
	}
	if err := h.store.SaveRank(ctx, rank); err != nil {
		h.errorResponse(w, ErrValidation, "Rank save failed")
		return
	}
	h.jsonResponse(w, http.StatusCreated, rank)
}

// UpdateRank replaces the mutable fields of an existing rank.
func (h *Handler) UpdateRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	rank, err := h.store.RankByID(ctx, chi.URLParam(r, "rankId"))
	if err != nil {
		h.errorResponse(w, ErrValidation, "Rank lookup failed")
		return
	}
	if rank == nil {
		h.errorResponse(w, ErrRankMissing, "No such rank")
		return
	}

	if lower(req.Name) != rank.NameLower {
		conflict, err := h.store.RankByName(ctx, req.Name)
		if err != nil {
			h.errorResponse(w, ErrValidation, "Rank lookup failed")
			return
		}
		if conflict != nil {
			h.errorResponse(w, ErrRankConflict, "A rank with this name already exists")
			return
		}
	}

	rank.Name = req.Name
	rank.NameLower = lower(req.Name)
	rank.DisplayName = req.DisplayName
	rank.Prefix = req.Prefix
	rank.Priority = req.Priority
	rank.Permissions = dedup(req.Permissions)
	rank.Staff = req.Staff
	rank.ApplyOnJoin = req.ApplyOnJoin

	if err := h.store.SaveRank(ctx, rank); err != nil {
		h.errorResponse(w, ErrValidation, "Rank save failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, rank)
}

// DeleteRank removes the rank and drains every reference from player
// documents so no player keeps a dangling rank id.
func (h *Handler) DeleteRank(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rankID := chi.URLParam(r, "rankId")

	rank, err := h.store.RankByID(ctx, rankID)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Rank lookup failed")
		return
	}
	if rank == nil {
		h.errorResponse(w, ErrRankMissing, "No such rank")
		return
	}

	holders, err := h.store.PlayersWithRank(ctx, rankID)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Rank holder lookup failed")
		return
	}
	for i := range holders {
		player := holders[i]
		player.RankIDs = remove(player.RankIDs, rankID)
		if err := h.players.Set(ctx, player.Name, &player, true); err != nil {
			h.logger.Errorw("Rank cascade save failed", "playerId", player.ID, "error", err)
		}
	}

	if err := h.store.DeleteRank(ctx, rankID); err != nil {
		h.errorResponse(w, ErrValidation, "Rank delete failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, rank)
}

func dedup(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
