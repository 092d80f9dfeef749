package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jorgeberrex/mars-api/internal/models"
)

func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.store.AllTags(r.Context())
	if err != nil {
		h.errorResponse(w, ErrValidation, "Tag lookup failed")
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	h.jsonResponse(w, http.StatusOK, tags)
}

type TagRequest struct {
	Name    string `json:"name" validate:"required"`
	Display string `json:"display" validate:"required"`
}

// CreateTag inserts a new tag; names are unique case-insensitively.
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	existing, err := h.store.TagByName(ctx, req.Name)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Tag lookup failed")
		return
	}
	if existing != nil {
		h.errorResponse(w, ErrTagConflict, "A tag with this name already exists")
		return
	}

	tag := &models.Tag{
		ID:        uuid.New().String(),
		Name:      req.Name,
		NameLower: lower(req.Name),
		Display:   req.Display,
		CreatedAt: nowMillis(),
	}
	if err := h.store.SaveTag(ctx, tag); err != nil {
		h.errorResponse(w, ErrValidation, "Tag save failed")
		return
	}
	h.jsonResponse(w, http.StatusCreated, tag)
}

func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	tag, err := h.store.TagByID(ctx, chi.URLParam(r, "tagId"))
	if err != nil {
		h.errorResponse(w, ErrValidation, "Tag lookup failed")
		return
	}
	if tag == nil {
		h.errorResponse(w, ErrTagMissing, "No such tag")
		return
	}

	if lower(req.Name) != tag.NameLower {
		conflict, err := h.store.TagByName(ctx, req.Name)
		if err != nil {
			h.errorResponse(w, ErrValidation, "Tag lookup failed")
			return
		}
		if conflict != nil {
			h.errorResponse(w, ErrTagConflict, "A tag with this name already exists")
			return
		}
	}

	tag.Name = req.Name
	tag.NameLower = lower(req.Name)
	tag.Display = req.Display

	if err := h.store.SaveTag(ctx, tag); err != nil {
		h.errorResponse(w, ErrValidation, "Tag save failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, tag)
}

// DeleteTag removes the tag and drains every reference from player
// documents, clearing the active tag where it was being worn.
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagID := chi.URLParam(r, "tagId")

	tag, err := h.store.TagByID(ctx, tagID)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Tag lookup failed")
		return
	}
	if tag == nil {
		h.errorResponse(w, ErrTagMissing, "No such tag")
		return
	}

	holders, err := h.store.PlayersWithTag(ctx, tagID)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Tag holder lookup failed")
		return
	}
	for i := range holders {
		player := holders[i]
		player.TagIDs = remove(player.TagIDs, tagID)
		if player.ActiveTagID != nil && *player.ActiveTagID == tagID {
			player.ActiveTagID = nil
		}
		if err := h.players.Set(ctx, player.Name, &player, true); err != nil {
			h.logger.Errorw("Tag cascade save failed", "playerId", player.ID, "error", err)
		}
	}

	if err := h.store.DeleteTag(ctx, tagID); err != nil {
		h.errorResponse(w, ErrValidation, "Tag delete failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, tag)
}
