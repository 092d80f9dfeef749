package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// PunishmentTypes serves the operator-configured punishment templates.
func (h *Handler) PunishmentTypes(w http.ResponseWriter, r *http.Request) {
	types := h.cfg.Data.PunishmentTypes
	if types == nil {
		types = []models.PunishmentType{}
	}
	h.jsonResponse(w, http.StatusOK, types)
}

func (h *Handler) GetPunishment(w http.ResponseWriter, r *http.Request) {
	pun, err := h.store.PunishmentByID(r.Context(), chi.URLParam(r, "punishmentId"))
	if err != nil {
		h.errorResponse(w, ErrValidation, "Punishment lookup failed")
		return
	}
	if pun == nil {
		h.errorResponse(w, ErrPunishmentMissing, "No such punishment")
		return
	}
	h.jsonResponse(w, http.StatusOK, pun)
}

type RevertPunishmentRequest struct {
	Reverter models.SimplePlayer `json:"reverter" validate:"required"`
	Reason   string              `json:"reason" validate:"required"`
}

// RevertPunishment marks a punishment as undone; reverting twice is a
// validation error.
func (h *Handler) RevertPunishment(w http.ResponseWriter, r *http.Request) {
	var req RevertPunishmentRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := r.Context()

	pun, err := h.store.PunishmentByID(ctx, chi.URLParam(r, "punishmentId"))
	if err != nil {
		h.errorResponse(w, ErrValidation, "Punishment lookup failed")
		return
	}
	if pun == nil {
		h.errorResponse(w, ErrPunishmentMissing, "No such punishment")
		return
	}
	if pun.Reversion != nil {
		h.errorResponse(w, ErrValidation, "Punishment already reverted")
		return
	}

	pun.Reversion = &models.PunishmentReversion{
		RevertedAt: nowMillis(),
		Reverter:   req.Reverter,
		Reason:     req.Reason,
	}
	if err := h.store.SavePunishment(ctx, pun); err != nil {
		h.logger.Errorw("Punishment save failed", "punishmentId", pun.ID, "error", err)
		h.errorResponse(w, ErrValidation, "Punishment save failed")
		return
	}

	h.webhooks.SendPunishmentReverted(pun)
	h.jsonResponse(w, http.StatusOK, pun)
}
