package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/jorgeberrex/mars-api/internal/models"
)

func TestIssuePunishmentDefaultsTargetIPs(t *testing.T) {
	env := newTestEnv()
	player := &models.Player{ID: "p1", Name: "Alice", IPs: []string{"1.1.1.1", "2.2.2.2"}}
	env.players.Set(context.Background(), "p1", player, false)

	var inserted *models.Punishment
	env.store.InsertPunishmentFunc = func(ctx context.Context, pun *models.Punishment) error {
		inserted = pun
		return nil
	}

	rec := env.request(t, http.MethodPost, "/mc/players/p1/punishments", map[string]any{
		"reason":   map[string]string{"name": "Cheating", "message": "Cheating", "short": "cheating"},
		"action":   map[string]any{"kind": "BAN", "length": -1},
		"punisher": map[string]string{"id": "staff-1", "name": "Mod"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; expected 201", rec.Code)
	}

	if inserted == nil {
		t.Fatal("punishment not inserted")
	}
	if len(inserted.TargetIPs) != 2 {
		t.Errorf("target ips = %v; expected the player's known addresses", inserted.TargetIPs)
	}
	if inserted.ServerID == nil || *inserted.ServerID != "game-1" {
		t.Errorf("server id = %v", inserted.ServerID)
	}
	if len(env.webhooks.punishments) != 1 {
		t.Errorf("punishment webhooks = %d; expected 1", len(env.webhooks.punishments))
	}
}

func TestRevertPunishmentMissing(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodPost, "/mc/punishments/nope/revert", map[string]any{
		"reverter": map[string]string{"id": "staff-1", "name": "Mod"},
		"reason":   "appeal accepted",
	})
	if rec.Code != http.StatusNotFound || errorCodeOf(t, rec) != ErrPunishmentMissing {
		t.Errorf("status = %d; expected 404 PUNISHMENT_MISSING", rec.Code)
	}
}

func TestRevertPunishment(t *testing.T) {
	env := newTestEnv()
	pun := &models.Punishment{ID: "pun-1", Action: models.PunishmentAction{Kind: models.PunishmentKindBan, Length: -1}}
	env.store.PunishmentByIDFunc = func(ctx context.Context, id string) (*models.Punishment, error) {
		return pun, nil
	}
	var saved *models.Punishment
	env.store.SavePunishmentFunc = func(ctx context.Context, p *models.Punishment) error {
		saved = p
		return nil
	}

	rec := env.request(t, http.MethodPost, "/mc/punishments/pun-1/revert", map[string]any{
		"reverter": map[string]string{"id": "staff-1", "name": "Mod"},
		"reason":   "appeal accepted",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; expected 200", rec.Code)
	}

	if saved == nil || saved.Reversion == nil {
		t.Fatal("reversion not recorded")
	}
	if saved.Reversion.Reason != "appeal accepted" || saved.Reversion.Reverter.ID != "staff-1" {
		t.Errorf("reversion = %+v", saved.Reversion)
	}
	if len(env.webhooks.reversions) != 1 {
		t.Errorf("reversion webhooks = %d; expected 1", len(env.webhooks.reversions))
	}
}

func TestRevertPunishmentTwice(t *testing.T) {
	env := newTestEnv()
	pun := &models.Punishment{
		ID:        "pun-1",
		Reversion: &models.PunishmentReversion{RevertedAt: 1, Reason: "earlier appeal"},
	}
	env.store.PunishmentByIDFunc = func(ctx context.Context, id string) (*models.Punishment, error) {
		return pun, nil
	}

	rec := env.request(t, http.MethodPost, "/mc/punishments/pun-1/revert", map[string]any{
		"reverter": map[string]string{"id": "staff-1", "name": "Mod"},
		"reason":   "again",
	})
	if rec.Code != http.StatusBadRequest || errorCodeOf(t, rec) != ErrValidation {
		t.Errorf("status = %d; reverting twice must fail validation", rec.Code)
	}
}
