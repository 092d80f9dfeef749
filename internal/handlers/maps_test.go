package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/jorgeberrex/mars-api/internal/models"
)

func TestUpsertMapsCreatesAndUpdates(t *testing.T) {
	env := newTestEnv()
	known := &models.Level{ID: "lvl-1", Name: "Blitz", NameLower: "blitz", Version: "1.0", LoadedAt: 100}
	env.store.LevelByNameFunc = func(ctx context.Context, name string) (*models.Level, error) {
		if name == "Blitz" {
			return known, nil
		}
		return nil, nil
	}
	var saved []*models.Level
	env.store.SaveLevelFunc = func(ctx context.Context, level *models.Level) error {
		saved = append(saved, level)
		return nil
	}

	rec := env.request(t, http.MethodPost, "/mc/maps/", []map[string]any{
		{"name": "Blitz", "version": "1.1", "gamemodes": []string{"CAPTURE_THE_FLAG"}},
		{"name": "Warzone", "version": "1.0"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; expected 200", rec.Code)
	}

	if len(saved) != 2 {
		t.Fatalf("saved %d levels; expected 2", len(saved))
	}
	if saved[0].ID != "lvl-1" || saved[0].Version != "1.1" {
		t.Errorf("known map = %+v; expected update in place", saved[0])
	}
	if saved[0].LoadedAt != 100 {
		t.Errorf("loadedAt = %d; first-load timestamp must survive updates", saved[0].LoadedAt)
	}
	if saved[1].ID == "" || saved[1].NameLower != "warzone" || saved[1].LoadedAt == 0 {
		t.Errorf("new map = %+v; expected fresh id and timestamps", saved[1])
	}
}

func TestUpsertMapsRejectsNamelessEntry(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodPost, "/mc/maps/", []map[string]any{
		{"version": "1.0"},
	})
	if rec.Code != http.StatusBadRequest || errorCodeOf(t, rec) != ErrValidation {
		t.Errorf("status = %d; expected 400", rec.Code)
	}
}

func TestGetMapMissing(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodGet, "/mc/maps/nope", nil)
	if rec.Code != http.StatusNotFound || errorCodeOf(t, rec) != ErrMapMissing {
		t.Errorf("status = %d; expected 404 MAP_MISSING", rec.Code)
	}
}
