package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestStaticDataEndpointsNeverReturnNull(t *testing.T) {
	env := newTestEnv()

	for _, path := range []string{"/mc/broadcasts", "/mc/levels/colors", "/mc/perks/join_sounds", "/mc/punishments/types"} {
		rec := env.request(t, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
			continue
		}
		var entries []json.RawMessage
		if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
			t.Errorf("%s: expected a JSON array, got %q", path, rec.Body.String())
		}
	}
}

func TestCreateReport(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodPost, "/mc/reports", map[string]any{
		"target":   "Suspect",
		"reporter": map[string]string{"id": "p1", "name": "Alice"},
		"reason":   "fly hacking",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; expected 200", rec.Code)
	}
	if len(env.webhooks.reports) != 1 || env.webhooks.reports[0] != "Suspect" {
		t.Errorf("reports = %v; expected one webhook send", env.webhooks.reports)
	}
}
