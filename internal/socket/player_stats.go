package socket

import (
	"context"
	"strconv"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// Joining later than 10% of the match (capped at one minute) forfeits the
// outcome; being away under 20s still counts as full presence.
const (
	participationCapMillis   = 60_000
	fullPresenceAwayCutoffMs = 20_000
)

// participationCutoff is the minimum played time for a match to count
// toward wins, losses and XP outcome awards.
func participationCutoff(matchLength int64) int64 {
	cutoff := matchLength / 10
	if cutoff > participationCapMillis {
		return participationCapMillis
	}
	return cutoff
}

// PlayerStatListener folds match activity into the lifetime profile.
// Arcade matches leave lifetime stats untouched.
type PlayerStatListener struct {
	BaseListener[models.Player]
}

func (PlayerStatListener) tracked(scope *EventScope) bool {
	return scope.Match.IsTrackingStats()
}

func (l PlayerStatListener) OnKill(ctx context.Context, scope *EventScope, player *models.Player, data *models.PlayerDeathData, firstBlood bool) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Kills++
	if firstBlood {
		player.Stats.FirstBloods++
	}
	if data.IsVoid() {
		player.Stats.VoidKills++
	}
	player.Stats.WeaponKills[data.SafeWeapon()]++
	return nil
}

func (l PlayerStatListener) OnDeath(ctx context.Context, scope *EventScope, player *models.Player, data *models.PlayerDeathData, firstBlood bool) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Deaths++
	if firstBlood {
		player.Stats.FirstBloodsSuffered++
	}
	if data.IsVoid() {
		player.Stats.VoidDeaths++
	}
	if data.IsMurder() {
		player.Stats.WeaponDeaths[data.SafeWeapon()]++
	}
	return nil
}

func (l PlayerStatListener) OnChat(ctx context.Context, scope *EventScope, player *models.Player, data *models.PlayerChatData) error {
	if !l.tracked(scope) {
		return nil
	}
	switch data.Channel {
	case models.ChatChannelStaff:
		player.Stats.Messages.Staff++
	case models.ChatChannelGlobal:
		player.Stats.Messages.Global++
	case models.ChatChannelTeam:
		player.Stats.Messages.Team++
	}
	return nil
}

func (l PlayerStatListener) OnKillstreak(ctx context.Context, scope *EventScope, player *models.Player, amount int) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Killstreaks[strconv.Itoa(amount)]++
	return nil
}

func (l PlayerStatListener) OnKillstreakEnd(ctx context.Context, scope *EventScope, player *models.Player, amount int) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.KillstreaksEnded[strconv.Itoa(amount)]++
	return nil
}

func (l PlayerStatListener) OnDestroyableDamage(ctx context.Context, scope *EventScope, player *models.Player, destroyable *models.DestroyableGoal, damage int) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.DestroyableBlockDestroys += damage
	return nil
}

func (l PlayerStatListener) OnDestroyableDestroy(ctx context.Context, scope *EventScope, player *models.Player, percentage float64, blockCount int) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.DestroyableDestroys++
	return nil
}

func (l PlayerStatListener) OnCoreLeak(ctx context.Context, scope *EventScope, player *models.Player, percentage float64, blockCount int) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.CoreLeaks++
	player.Stats.Objectives.CoreBlockDestroys += blockCount
	return nil
}

func (l PlayerStatListener) OnControlPointCapture(ctx context.Context, scope *EventScope, player *models.Player, contributors int) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.ControlPointCaptures++
	return nil
}

func (l PlayerStatListener) OnFlagPlace(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.FlagCaptures++
	player.Stats.Objectives.TotalFlagHoldTime += heldTime
	return nil
}

func (l PlayerStatListener) OnFlagPickup(ctx context.Context, scope *EventScope, player *models.Player) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.FlagPickups++
	return nil
}

func (l PlayerStatListener) OnFlagDrop(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.FlagDrops++
	player.Stats.Objectives.TotalFlagHoldTime += heldTime
	return nil
}

func (l PlayerStatListener) OnFlagDefend(ctx context.Context, scope *EventScope, player *models.Player) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.FlagDefends++
	return nil
}

func (l PlayerStatListener) OnWoolPlace(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.WoolCaptures++
	return nil
}

func (l PlayerStatListener) OnWoolPickup(ctx context.Context, scope *EventScope, player *models.Player) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.WoolPickups++
	return nil
}

func (l PlayerStatListener) OnWoolDrop(ctx context.Context, scope *EventScope, player *models.Player) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.WoolDrops++
	return nil
}

func (l PlayerStatListener) OnWoolDefend(ctx context.Context, scope *EventScope, player *models.Player) error {
	if !l.tracked(scope) {
		return nil
	}
	player.Stats.Objectives.WoolDefends++
	return nil
}

const outcomeForfeitMessage = "Your stats were not affected by the outcome of this match as you did not participate for long enough."

func (l PlayerStatListener) OnMatchEnd(ctx context.Context, scope *EventScope, player *models.Player, data *models.MatchEndData) error {
	if !l.tracked(scope) {
		return nil
	}
	participant := scope.Participant

	if big, ok := data.BigStats[player.ID]; ok {
		for block, count := range big.Blocks.BlocksPlaced {
			player.Stats.BlocksPlaced[block] += count
		}
		for block, count := range big.Blocks.BlocksBroken {
			player.Stats.BlocksBroken[block] += count
		}
		player.Stats.BowShotsTaken += big.BowShotsTaken
		player.Stats.BowShotsHit += big.BowShotsHit
		player.Stats.DamageGiven += big.DamageGiven
		player.Stats.DamageTaken += big.DamageTaken
		player.Stats.DamageGivenBow += big.DamageGivenBow
	}

	cutoff := participationCutoff(scope.Match.Length())
	if participant.Stats.GamePlaytime > cutoff {
		switch data.ResultFor(scope.Match, participant) {
		case models.MatchResultWin:
			player.Stats.Wins++
		case models.MatchResultLose:
			player.Stats.Losses++
		case models.MatchResultTie:
			player.Stats.Ties++
		}
		player.Stats.Matches++
	} else {
		scope.Server.Call(ctx, models.EventMessage, models.MessageData{
			Message:   outcomeForfeitMessage,
			PlayerIDs: []string{player.ID},
		})
	}

	if scope.Match.StartedAt != nil {
		lateBy := participant.FirstJoinedMatchAt - *scope.Match.StartedAt
		if lateBy < 0 {
			lateBy = 0
		}
		if lateBy < cutoff {
			player.Stats.MatchesPresentStart++
		}
	}
	if participant.Stats.TimeAway < fullPresenceAwayCutoffMs && participant.IsPlaying() {
		player.Stats.MatchesPresentFull++
	}
	if participant.IsPlaying() {
		player.Stats.MatchesPresentEnd++
	}
	player.Stats.GamePlaytime += participant.Stats.GamePlaytime
	return nil
}
