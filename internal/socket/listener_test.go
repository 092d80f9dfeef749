package socket

import (
	"context"
	"testing"
	"time"

	"github.com/jorgeberrex/mars-api/internal/models"
)

func TestParticipantStatListenerKillAndDeath(t *testing.T) {
	h := newTestHarness("game-1")
	match := newLiveMatch("game-1")
	scope := &EventScope{Server: h.server, Match: match}
	ctx := context.Background()

	attacker := models.NewParticipant(models.SimpleParticipant{ID: "a1", Name: "Alice"}, 0)
	victim := models.NewParticipant(models.SimpleParticipant{ID: "v1", Name: "Bob"}, 0)
	sword := "IRON_SWORD"
	data := &models.PlayerDeathData{
		Victim:   models.SimplePlayer{ID: "v1", Name: "Bob"},
		Attacker: &models.SimplePlayer{ID: "a1", Name: "Alice"},
		Weapon:   &sword,
		Cause:    models.DamageCauseMelee,
	}

	var l ParticipantStatListener
	if err := l.OnKill(ctx, scope, &attacker, data, false); err != nil {
		t.Fatal(err)
	}
	if err := l.OnDeath(ctx, scope, &victim, data, false); err != nil {
		t.Fatal(err)
	}

	if attacker.Stats.Kills != 1 || attacker.Stats.WeaponKills["IRON_SWORD"] != 1 {
		t.Errorf("attacker stats = %+v", attacker.Stats)
	}
	if attacker.Stats.Duels["v1"].Kills != 1 {
		t.Errorf("attacker duels = %+v", attacker.Stats.Duels)
	}
	if victim.Stats.Deaths != 1 || victim.Stats.WeaponDeaths["IRON_SWORD"] != 1 {
		t.Errorf("victim stats = %+v", victim.Stats)
	}
	if victim.Stats.Duels["a1"].Deaths != 1 {
		t.Errorf("victim duels = %+v", victim.Stats.Duels)
	}
}

func TestParticipantStatListenerChatChannels(t *testing.T) {
	h := newTestHarness("game-1")
	scope := &EventScope{Server: h.server, Match: newLiveMatch("game-1")}
	ctx := context.Background()
	p := models.NewParticipant(models.SimpleParticipant{ID: "p1", Name: "Alice"}, 0)

	var l ParticipantStatListener
	channels := []models.ChatChannel{
		models.ChatChannelStaff,
		models.ChatChannelGlobal, models.ChatChannelGlobal,
		models.ChatChannelTeam,
	}
	for _, ch := range channels {
		l.OnChat(ctx, scope, &p, &models.PlayerChatData{Channel: ch})
	}

	if p.Stats.Messages.Staff != 1 || p.Stats.Messages.Global != 2 || p.Stats.Messages.Team != 1 {
		t.Errorf("messages = %+v", p.Stats.Messages)
	}
}

func TestParticipantPartyListenerTimestamps(t *testing.T) {
	h := newTestHarness("game-1")
	scope := &EventScope{Server: h.server, Match: newLiveMatch("game-1")}
	ctx := context.Background()
	p := models.NewParticipant(models.SimpleParticipant{ID: "p1", Name: "Alice"}, 0)

	var l ParticipantPartyListener
	if err := l.OnPartyLeave(ctx, scope, &p); err != nil {
		t.Fatal(err)
	}
	if p.PartyName != nil || p.JoinedPartyAt != nil || p.LastLeftPartyAt == nil {
		t.Errorf("after leave: %+v", p)
	}

	if err := l.OnPartyJoin(ctx, scope, &p, "Blue"); err != nil {
		t.Fatal(err)
	}
	if p.PartyName == nil || *p.PartyName != "Blue" || p.JoinedPartyAt == nil {
		t.Errorf("after join: %+v", p)
	}
	if p.LastPartyName == nil || *p.LastPartyName != "Blue" {
		t.Errorf("last party = %v", p.LastPartyName)
	}
}

func TestMapRecordListenerKillstreak(t *testing.T) {
	h := newTestHarness("game-1")
	match := newLiveMatch("game-1")
	scope := &EventScope{Server: h.server, Match: match}
	ctx := context.Background()
	p := models.NewParticipant(models.SimpleParticipant{ID: "p1", Name: "Alice"}, 0)

	var l MapRecordListener
	l.OnKillstreak(ctx, scope, &p, 10)
	l.OnKillstreak(ctx, scope, &p, 5) // lower, must not replace

	rec := match.Level.Records.HighestKillstreak
	if rec == nil || rec.Value != 10 {
		t.Errorf("highest killstreak record = %+v; expected 10", rec)
	}
}

func TestMapRecordListenerProjectileNeedsFullLobby(t *testing.T) {
	h := newTestHarness("game-1")
	match := newLiveMatch("game-1")
	scope := &EventScope{Server: h.server, Match: match}
	ctx := context.Background()

	distance := 42
	sniper := models.NewParticipant(models.SimpleParticipant{ID: "p1", Name: "Alice"}, 0)
	data := &models.PlayerDeathData{
		Victim:   models.SimplePlayer{ID: "v1", Name: "Bob"},
		Attacker: &models.SimplePlayer{ID: "p1", Name: "Alice"},
		Distance: &distance,
		Cause:    models.DamageCauseProjectile,
	}

	var l MapRecordListener
	// Two participants: below the lobby size floor.
	match.SaveParticipant(sniper)
	match.SaveParticipant(models.NewParticipant(models.SimpleParticipant{ID: "v1", Name: "Bob"}, 0))
	l.OnKill(ctx, scope, &sniper, data, false)
	if match.Level.Records.LongestProjectileKill != nil {
		t.Error("projectile record must not count in a small lobby")
	}

	for i := 0; i < projectileRecordMinParticipants; i++ {
		match.SaveParticipant(models.NewParticipant(models.SimpleParticipant{
			ID: "filler-" + string(rune('a'+i)), Name: "Filler",
		}, 0))
	}
	l.OnKill(ctx, scope, &sniper, data, false)
	rec := match.Level.Records.LongestProjectileKill
	if rec == nil || rec.Distance != 42 {
		t.Errorf("projectile record = %+v; expected distance 42", rec)
	}
}

func TestPlayerXPListenerFirstBloodBonus(t *testing.T) {
	h := newTestHarness("game-1")
	match := newLiveMatch("game-1")
	scope := &EventScope{Server: h.server, Match: match}
	ctx := context.Background()

	// High level so the new-player boost is a plain 1x.
	player := &models.Player{ID: "p1", Name: "Alice", Stats: models.NewPlayerStats()}
	player.Stats.XP = 20 * XPPerLevel

	var l PlayerXPListener
	data := &models.PlayerDeathData{
		Victim:   models.SimplePlayer{ID: "v1"},
		Attacker: &models.SimplePlayer{ID: "p1"},
	}
	if err := l.OnKill(ctx, scope, player, data, true); err != nil {
		t.Fatal(err)
	}

	expected := 20*XPPerLevel + XPKill + XPFirstBlood
	if player.Stats.XP != expected {
		t.Errorf("XP = %d; expected %d", player.Stats.XP, expected)
	}
	if got := h.emitter.countOf(models.EventPlayerXPGain); got != 2 {
		t.Errorf("XP gain notifications = %d; expected 2", got)
	}
}

func TestParticipantStatListenerMatchEndBanksPlaytime(t *testing.T) {
	h := newTestHarness("game-1")
	match := newLiveMatch("game-1")
	end := time.Now().UnixMilli()
	match.EndedAt = &end
	scope := &EventScope{Server: h.server, Match: match}
	ctx := context.Background()

	joined := end - 120_000
	party := "Red"
	p := models.Participant{
		ID: "p1", Name: "Alice", PartyName: &party,
		JoinedPartyAt: &joined,
		Stats:         models.NewParticipantStats(),
	}

	var l ParticipantStatListener
	if err := l.OnMatchEnd(ctx, scope, &p, &models.MatchEndData{}); err != nil {
		t.Fatal(err)
	}
	if p.Stats.GamePlaytime != 120_000 {
		t.Errorf("game playtime = %d; expected 120000", p.Stats.GamePlaytime)
	}
}
