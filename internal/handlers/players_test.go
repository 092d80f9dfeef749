package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jorgeberrex/mars-api/internal/models"
)

func permanentBan(target models.SimplePlayer) models.Punishment {
	return models.Punishment{
		ID:     "pun-" + target.ID,
		Action: models.PunishmentAction{Kind: models.PunishmentKindBan, Length: -1},
		Target: target,
	}
}

func TestPreLoginNewPlayer(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodPost, "/mc/players/p1/prelogin", map[string]any{
		"player": map[string]string{"id": "p1", "name": "Alice"},
		"ip":     "1.2.3.4",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; expected 201", rec.Code)
	}

	var resp PreLoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.New || !resp.Allowed {
		t.Errorf("new = %v allowed = %v; expected both true", resp.New, resp.Allowed)
	}
	if resp.Player == nil || resp.Player.NameLower != "alice" {
		t.Errorf("player = %+v", resp.Player)
	}

	saved := env.players.players["Alice"]
	if saved == nil || saved.ID != "p1" {
		t.Fatalf("player not cached: %+v", env.players.players)
	}
	if len(env.players.persists) != 1 || !env.players.persists[0] {
		t.Errorf("persists = %v; expected one write-through save", env.players.persists)
	}
	if saved.RankIDs == nil || saved.TagIDs == nil || saved.Notes == nil {
		t.Error("list fields must be allocated, not nil")
	}
}

func TestPreLoginReturningPlayerRefreshesIdentity(t *testing.T) {
	env := newTestEnv()
	env.store.PlayerByIDFunc = func(ctx context.Context, id string) (*models.Player, error) {
		return &models.Player{ID: "p1", Name: "OldName", NameLower: "oldname", IPs: []string{"1.1.1.1"}}, nil
	}

	rec := env.request(t, http.MethodPost, "/mc/players/p1/prelogin", map[string]any{
		"player": map[string]string{"id": "p1", "name": "NewName"},
		"ip":     "2.2.2.2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; expected 200", rec.Code)
	}

	var resp PreLoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.New {
		t.Error("returning player reported as new")
	}
	if resp.Player.Name != "NewName" || resp.Player.NameLower != "newname" {
		t.Errorf("identity not refreshed: %+v", resp.Player)
	}
	if len(resp.Player.IPs) != 2 || resp.Player.IPs[1] != "2.2.2.2" {
		t.Errorf("ips = %v; expected new address appended", resp.Player.IPs)
	}
}

func TestPreLoginBannedPlayerNotAllowed(t *testing.T) {
	env := newTestEnv()
	target := models.SimplePlayer{ID: "p1", Name: "Alice"}
	env.store.PlayerByIDFunc = func(ctx context.Context, id string) (*models.Player, error) {
		return &models.Player{ID: "p1", Name: "Alice", IPs: []string{"1.1.1.1"}}, nil
	}
	env.store.ActivePlayerPunishmentsFunc = func(ctx context.Context, player *models.Player) ([]models.Punishment, error) {
		return []models.Punishment{permanentBan(target)}, nil
	}

	rec := env.request(t, http.MethodPost, "/mc/players/p1/prelogin", map[string]any{
		"player": map[string]string{"id": "p1", "name": "Alice"},
		"ip":     "1.1.1.1",
	})

	var resp PreLoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Allowed {
		t.Error("banned player must not be allowed")
	}
	if len(resp.ActivePunishments) != 1 {
		t.Errorf("active punishments = %d; expected 1", len(resp.ActivePunishments))
	}
}

func TestPreLoginMergesIPBansFromOtherAccounts(t *testing.T) {
	env := newTestEnv()
	env.store.PlayerByIDFunc = func(ctx context.Context, id string) (*models.Player, error) {
		return &models.Player{ID: "p1", Name: "Alice", IPs: []string{"1.1.1.1"}}, nil
	}
	env.store.IPBansFunc = func(ctx context.Context, ip string) ([]models.Punishment, error) {
		// One ban on the player directly, one on an alt sharing the
		// address. Only the alt's ban is new information.
		return []models.Punishment{
			permanentBan(models.SimplePlayer{ID: "p1", Name: "Alice"}),
			permanentBan(models.SimplePlayer{ID: "alt-1", Name: "AltAccount"}),
		}, nil
	}

	rec := env.request(t, http.MethodPost, "/mc/players/p1/prelogin", map[string]any{
		"player": map[string]string{"id": "p1", "name": "Alice"},
		"ip":     "1.1.1.1",
	})

	var resp PreLoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Allowed {
		t.Error("shared-address ban must block the join")
	}
	if len(resp.ActivePunishments) != 1 {
		t.Errorf("active punishments = %d; expected only the alt's ban", len(resp.ActivePunishments))
	}
}

func TestPreLoginRejectsIDMismatch(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodPost, "/mc/players/other/prelogin", map[string]any{
		"player": map[string]string{"id": "p1", "name": "Alice"},
		"ip":     "1.2.3.4",
	})
	if rec.Code != http.StatusBadRequest || errorCodeOf(t, rec) != ErrValidation {
		t.Errorf("status = %d; URL/body id mismatch must fail validation", rec.Code)
	}
}

func TestLoginRequiresPrelogin(t *testing.T) {
	env := newTestEnv()

	rec := env.request(t, http.MethodPost, "/mc/players/p1/login", map[string]any{
		"player": map[string]string{"id": "p1", "name": "Alice"},
		"ip":     "1.1.1.1",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d; expected 404", rec.Code)
	}
	if errorCodeOf(t, rec) != ErrPlayerMissing {
		t.Error("expected PLAYER_MISSING")
	}

	// A cached profile under the same name but another id is not a match.
	env.players.Set(context.Background(), "Alice", &models.Player{ID: "someone-else", Name: "Alice"}, false)
	rec = env.request(t, http.MethodPost, "/mc/players/p1/login", map[string]any{
		"player": map[string]string{"id": "p1", "name": "Alice"},
		"ip":     "1.1.1.1",
	})
	if errorCodeOf(t, rec) != ErrPlayerMissing {
		t.Error("id mismatch must read as missing")
	}
}

func TestLoginOpensSessionAndAppliesDefaultRanks(t *testing.T) {
	env := newTestEnv()
	player := &models.Player{ID: "p1", Name: "Alice", RankIDs: []string{}}
	env.players.Set(context.Background(), "Alice", player, false)

	var inserted *models.Session
	env.store.InsertSessionFunc = func(ctx context.Context, session *models.Session) error {
		inserted = session
		return nil
	}
	env.store.DefaultRanksFunc = func(ctx context.Context) ([]models.Rank, error) {
		return []models.Rank{{ID: "r-default", ApplyOnJoin: true}}, nil
	}

	rec := env.request(t, http.MethodPost, "/mc/players/p1/login", map[string]any{
		"player": map[string]string{"id": "p1", "name": "Alice"},
		"ip":     "1.1.1.1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; expected 201", rec.Code)
	}

	if inserted == nil {
		t.Fatal("no session inserted")
	}
	if inserted.ServerID != "game-1" {
		t.Errorf("session server = %q; expected the calling server", inserted.ServerID)
	}
	if !contains(player.RankIDs, "r-default") {
		t.Errorf("rank ids = %v; expected the default rank applied", player.RankIDs)
	}
	if player.LastSessionID == nil || *player.LastSessionID != inserted.ID {
		t.Errorf("last session id = %v; expected %q", player.LastSessionID, inserted.ID)
	}
}

func TestLogoutUnknownSession(t *testing.T) {
	env := newTestEnv()
	env.players.Set(context.Background(), "Alice", &models.Player{ID: "p1", Name: "Alice"}, false)

	rec := env.request(t, http.MethodPost, "/mc/players/logout", map[string]any{
		"player":    map[string]string{"id": "p1", "name": "Alice"},
		"sessionId": "nope",
		"playtime":  1000,
	})
	if rec.Code != http.StatusNotFound || errorCodeOf(t, rec) != ErrSessionMissing {
		t.Errorf("status = %d code = %s; expected 404 SESSION_MISSING", rec.Code, errorCodeOf(t, rec))
	}
}

func TestLogoutInactiveSession(t *testing.T) {
	env := newTestEnv()
	env.players.Set(context.Background(), "Alice", &models.Player{ID: "p1", Name: "Alice"}, false)
	ended := time.Now().UnixMilli()
	env.store.SessionForPlayerFunc = func(ctx context.Context, player *models.Player, sessionID string) (*models.Session, error) {
		return &models.Session{ID: sessionID, CreatedAt: ended - 1000, EndedAt: &ended}, nil
	}

	rec := env.request(t, http.MethodPost, "/mc/players/logout", map[string]any{
		"player":    map[string]string{"id": "p1", "name": "Alice"},
		"sessionId": "s1",
		"playtime":  1000,
	})
	if errorCodeOf(t, rec) != ErrSessionInactive {
		t.Errorf("code = %s; expected SESSION_INACTIVE", errorCodeOf(t, rec))
	}
}

func TestLogoutClosesSessionAndBanksPlaytime(t *testing.T) {
	env := newTestEnv()
	player := &models.Player{ID: "p1", Name: "Alice", Stats: models.NewPlayerStats()}
	env.players.Set(context.Background(), "Alice", player, false)

	session := &models.Session{ID: "s1", Player: player.ToSimple(), CreatedAt: time.Now().UnixMilli() - 120_000}
	env.store.SessionForPlayerFunc = func(ctx context.Context, p *models.Player, sessionID string) (*models.Session, error) {
		return session, nil
	}
	var saved *models.Session
	env.store.SaveSessionFunc = func(ctx context.Context, s *models.Session) error {
		saved = s
		return nil
	}

	rec := env.request(t, http.MethodPost, "/mc/players/logout", map[string]any{
		"player":    map[string]string{"id": "p1", "name": "Alice"},
		"sessionId": "s1",
		"playtime":  120_000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; expected 200", rec.Code)
	}

	if saved == nil || saved.EndedAt == nil {
		t.Fatal("session not closed and saved")
	}
	if player.Stats.ServerPlaytime != 120_000 {
		t.Errorf("server playtime = %d; expected 120000", player.Stats.ServerPlaytime)
	}
	rec2 := player.Stats.Records.LongestSession
	if rec2 == nil || rec2.SessionID != "s1" {
		t.Errorf("longest session record = %+v", rec2)
	}
}

func TestLogoutRecordUsesReportedPlaytime(t *testing.T) {
	env := newTestEnv()
	player := &models.Player{ID: "p1", Name: "Alice", Stats: models.NewPlayerStats()}
	player.Stats.Records.LongestSession = &models.SessionRecord{SessionID: "old", Length: 50_000}
	env.players.Set(context.Background(), "Alice", player, false)

	// The session has been open for ten minutes, but the server only
	// reports five seconds of actual playtime.
	session := &models.Session{ID: "s1", Player: player.ToSimple(), CreatedAt: time.Now().UnixMilli() - 600_000}
	env.store.SessionForPlayerFunc = func(ctx context.Context, p *models.Player, sessionID string) (*models.Session, error) {
		return session, nil
	}

	rec := env.request(t, http.MethodPost, "/mc/players/logout", map[string]any{
		"player":    map[string]string{"id": "p1", "name": "Alice"},
		"sessionId": "s1",
		"playtime":  5000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; expected 200", rec.Code)
	}

	longest := player.Stats.Records.LongestSession
	if longest == nil || longest.SessionID != "old" || longest.Length != 50_000 {
		t.Errorf("longest session record = %+v; wall-clock age must not replace it", longest)
	}
	if player.Stats.ServerPlaytime != 5000 {
		t.Errorf("server playtime = %d; expected the reported 5000", player.Stats.ServerPlaytime)
	}

	// A reported playtime above the record replaces it, again ignoring
	// how long the session document sat open.
	session = &models.Session{ID: "s2", Player: player.ToSimple(), CreatedAt: time.Now().UnixMilli() - 1000}
	rec = env.request(t, http.MethodPost, "/mc/players/logout", map[string]any{
		"player":    map[string]string{"id": "p1", "name": "Alice"},
		"sessionId": "s2",
		"playtime":  75_000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; expected 200", rec.Code)
	}
	longest = player.Stats.Records.LongestSession
	if longest == nil || longest.SessionID != "s2" || longest.Length != 75_000 {
		t.Errorf("longest session record = %+v; expected s2 at 75000", longest)
	}
}

func TestAddNoteAssignsNextID(t *testing.T) {
	env := newTestEnv()
	player := &models.Player{ID: "p1", Name: "Alice", Notes: []models.StaffNote{{ID: 1}, {ID: 3}}}
	env.players.Set(context.Background(), "p1", player, false)

	rec := env.request(t, http.MethodPost, "/mc/players/p1/notes", map[string]any{
		"author":  map[string]string{"id": "staff-1", "name": "Mod"},
		"content": "watch this one",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; expected 201", rec.Code)
	}

	if len(player.Notes) != 3 || player.Notes[2].ID != 4 {
		t.Errorf("notes = %+v; expected new note with id 4", player.Notes)
	}
	if len(env.webhooks.notesAdded) != 1 {
		t.Errorf("note webhooks = %d; expected 1", len(env.webhooks.notesAdded))
	}
}

func TestDeleteNote(t *testing.T) {
	env := newTestEnv()
	player := &models.Player{ID: "p1", Name: "Alice", Notes: []models.StaffNote{{ID: 1, Content: "old"}}}
	env.players.Set(context.Background(), "p1", player, false)

	rec := env.request(t, http.MethodDelete, "/mc/players/p1/notes/2", nil)
	if rec.Code != http.StatusNotFound || errorCodeOf(t, rec) != ErrNoteMissing {
		t.Errorf("status = %d; expected 404 NOTE_MISSING", rec.Code)
	}

	rec = env.request(t, http.MethodDelete, "/mc/players/p1/notes/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; expected 200", rec.Code)
	}
	if len(player.Notes) != 0 {
		t.Errorf("notes = %+v; expected empty", player.Notes)
	}
	if len(env.webhooks.notesDeleted) != 1 {
		t.Errorf("delete webhooks = %d; expected 1", len(env.webhooks.notesDeleted))
	}
}

func TestSetActiveTagRequiresOwnership(t *testing.T) {
	env := newTestEnv()
	env.players.Set(context.Background(), "p1", &models.Player{ID: "p1", Name: "Alice", TagIDs: []string{}}, false)

	rec := env.request(t, http.MethodPost, "/mc/players/p1/active_tag", map[string]any{"tagId": "t1"})
	if rec.Code != http.StatusConflict || errorCodeOf(t, rec) != ErrTagNotPresent {
		t.Errorf("status = %d code = %s; expected 409 TAG_NOT_PRESENT", rec.Code, errorCodeOf(t, rec))
	}
}

func TestRemovePlayerTagClearsActiveSlot(t *testing.T) {
	env := newTestEnv()
	active := "t1"
	player := &models.Player{ID: "p1", Name: "Alice", TagIDs: []string{"t1"}, ActiveTagID: &active}
	env.players.Set(context.Background(), "p1", player, false)

	rec := env.request(t, http.MethodDelete, "/mc/players/p1/tags/t1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; expected 200", rec.Code)
	}
	if len(player.TagIDs) != 0 || player.ActiveTagID != nil {
		t.Errorf("tags = %v active = %v; expected revoked and cleared", player.TagIDs, player.ActiveTagID)
	}
}
