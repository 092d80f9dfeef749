package handlers

import (
	"net/http"

	"github.com/jorgeberrex/mars-api/internal/models"
)

func (h *Handler) Broadcasts(w http.ResponseWriter, r *http.Request) {
	broadcasts := h.cfg.Data.Broadcasts
	if broadcasts == nil {
		broadcasts = []models.Broadcast{}
	}
	h.jsonResponse(w, http.StatusOK, broadcasts)
}

func (h *Handler) LevelColors(w http.ResponseWriter, r *http.Request) {
	colors := h.cfg.Data.LevelColors
	if colors == nil {
		colors = []models.LevelColor{}
	}
	h.jsonResponse(w, http.StatusOK, colors)
}

func (h *Handler) JoinSounds(w http.ResponseWriter, r *http.Request) {
	sounds := h.cfg.Data.JoinSounds
	if sounds == nil {
		sounds = []models.JoinSound{}
	}
	h.jsonResponse(w, http.StatusOK, sounds)
}

type CreateReportRequest struct {
	Target   string              `json:"target" validate:"required"`
	Reporter models.SimplePlayer `json:"reporter" validate:"required"`
	Reason   string              `json:"reason" validate:"required"`
}

// CreateReport relays a player report straight to the staff webhook.
// Reports are not persisted; the webhook channel is the system of record.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.webhooks.SendReport(req.Target, req.Reporter.Name, req.Reason, callingServerID(r))
	h.jsonResponse(w, http.StatusOK, map[string]bool{"ok": true})
}
