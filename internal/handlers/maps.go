package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jorgeberrex/mars-api/internal/models"
)

type MapPayload struct {
	Name         string                    `json:"name" validate:"required"`
	Version      string                    `json:"version"`
	Gamemodes    []models.Gamemode         `json:"gamemodes"`
	Authors      []models.LevelContributor `json:"authors"`
	Contributors []models.LevelContributor `json:"contributors"`
}

// UpsertMaps refreshes the map catalogue from a game server's local map
// repository. Known maps (by name) are updated in place, unknown maps are
// created. The full catalogue is returned so the caller can sync ids.
func (h *Handler) UpsertMaps(w http.ResponseWriter, r *http.Request) {
	var payloads []MapPayload
	if !h.decodeSlice(w, r, &payloads) {
		return
	}
	ctx := r.Context()
	now := nowMillis()

	for _, payload := range payloads {
		if err := h.validator.Struct(payload); err != nil {
			h.errorResponse(w, ErrValidation, "Validation failed: "+err.Error())
			return
		}
		level, err := h.store.LevelByName(ctx, payload.Name)
		if err != nil {
			h.errorResponse(w, ErrValidation, "Map lookup failed")
			return
		}
		if level == nil {
			level = &models.Level{
				ID:        uuid.New().String(),
				Name:      payload.Name,
				NameLower: lower(payload.Name),
				LoadedAt:  now,
			}
		}
		level.Version = payload.Version
		level.Gamemodes = payload.Gamemodes
		level.Authors = payload.Authors
		level.Contributors = payload.Contributors
		level.UpdatedAt = now

		if err := h.store.SaveLevel(ctx, level); err != nil {
			h.errorResponse(w, ErrValidation, "Map save failed")
			return
		}
	}

	levels, err := h.store.AllLevels(ctx)
	if err != nil {
		h.errorResponse(w, ErrValidation, "Map lookup failed")
		return
	}
	if levels == nil {
		levels = []models.Level{}
	}
	h.jsonResponse(w, http.StatusOK, levels)
}

func (h *Handler) ListMaps(w http.ResponseWriter, r *http.Request) {
	levels, err := h.store.AllLevels(r.Context())
	if err != nil {
		h.errorResponse(w, ErrValidation, "Map lookup failed")
		return
	}
	if levels == nil {
		levels = []models.Level{}
	}
	h.jsonResponse(w, http.StatusOK, levels)
}

func (h *Handler) GetMap(w http.ResponseWriter, r *http.Request) {
	level, err := h.store.LevelByIDOrName(r.Context(), chi.URLParam(r, "mapId"))
	if err != nil {
		h.errorResponse(w, ErrValidation, "Map lookup failed")
		return
	}
	if level == nil {
		h.errorResponse(w, ErrMapMissing, "No such map")
		return
	}
	h.jsonResponse(w, http.StatusOK, level)
}
