package socket

import (
	"context"
	"strconv"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// PlayerGamemodeStatListener repeats the counter updates per gamemode the
// level is tagged with. Untracked (arcade) matches still accumulate under
// the ARCADE bucket so exhibition play is visible somewhere.
//
// Unlike the lifetime listener this one keys weapons by the raw weapon
// name; the per-gamemode breakdowns predate weapon normalization.
type PlayerGamemodeStatListener struct {
	BaseListener[models.Player]
}

func (PlayerGamemodeStatListener) gamemodes(scope *EventScope) []models.Gamemode {
	if !scope.Match.IsTrackingStats() {
		return []models.Gamemode{models.GamemodeArcade}
	}
	return scope.Match.Level.Gamemodes
}

// mutate runs fn against each applicable gamemode bucket, inserting the
// bucket first when the player has never played the gamemode.
func (l PlayerGamemodeStatListener) mutate(scope *EventScope, player *models.Player, fn func(*models.PlayerStats)) {
	for _, gm := range l.gamemodes(scope) {
		stats := player.StatsForGamemode(gm)
		fn(stats)
		player.PutGamemodeStats(gm, *stats)
	}
}

func (l PlayerGamemodeStatListener) OnKill(ctx context.Context, scope *EventScope, player *models.Player, data *models.PlayerDeathData, firstBlood bool) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Kills++
		if firstBlood {
			s.FirstBloods++
		}
		if data.IsVoid() {
			s.VoidKills++
		}
		s.WeaponKills[data.RawWeapon()]++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnDeath(ctx context.Context, scope *EventScope, player *models.Player, data *models.PlayerDeathData, firstBlood bool) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Deaths++
		if firstBlood {
			s.FirstBloodsSuffered++
		}
		if data.IsVoid() {
			s.VoidDeaths++
		}
		if data.IsMurder() {
			s.WeaponDeaths[data.RawWeapon()]++
		}
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnChat(ctx context.Context, scope *EventScope, player *models.Player, data *models.PlayerChatData) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		switch data.Channel {
		case models.ChatChannelStaff:
			s.Messages.Staff++
		case models.ChatChannelGlobal:
			s.Messages.Global++
		case models.ChatChannelTeam:
			s.Messages.Team++
		}
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnKillstreak(ctx context.Context, scope *EventScope, player *models.Player, amount int) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Killstreaks[strconv.Itoa(amount)]++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnKillstreakEnd(ctx context.Context, scope *EventScope, player *models.Player, amount int) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.KillstreaksEnded[strconv.Itoa(amount)]++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnDestroyableDamage(ctx context.Context, scope *EventScope, player *models.Player, destroyable *models.DestroyableGoal, damage int) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.DestroyableBlockDestroys += damage
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnDestroyableDestroy(ctx context.Context, scope *EventScope, player *models.Player, percentage float64, blockCount int) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.DestroyableDestroys++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnCoreLeak(ctx context.Context, scope *EventScope, player *models.Player, percentage float64, blockCount int) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.CoreLeaks++
		s.Objectives.CoreBlockDestroys += blockCount
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnControlPointCapture(ctx context.Context, scope *EventScope, player *models.Player, contributors int) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.ControlPointCaptures++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnFlagPlace(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.FlagCaptures++
		s.Objectives.TotalFlagHoldTime += heldTime
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnFlagPickup(ctx context.Context, scope *EventScope, player *models.Player) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.FlagPickups++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnFlagDrop(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.FlagDrops++
		s.Objectives.TotalFlagHoldTime += heldTime
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnFlagDefend(ctx context.Context, scope *EventScope, player *models.Player) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.FlagDefends++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnWoolPlace(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.WoolCaptures++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnWoolPickup(ctx context.Context, scope *EventScope, player *models.Player) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.WoolPickups++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnWoolDrop(ctx context.Context, scope *EventScope, player *models.Player) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.WoolDrops++
	})
	return nil
}

func (l PlayerGamemodeStatListener) OnWoolDefend(ctx context.Context, scope *EventScope, player *models.Player) error {
	l.mutate(scope, player, func(s *models.PlayerStats) {
		s.Objectives.WoolDefends++
	})
	return nil
}
