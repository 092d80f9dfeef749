package socket

import (
	"context"
	"time"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// PlayerRecordListener keeps the personal-best mirror of the map records.
type PlayerRecordListener struct {
	BaseListener[models.Player]
}

func (PlayerRecordListener) tracked(scope *EventScope) bool {
	return scope.Match.IsTrackingStats()
}

func (l PlayerRecordListener) OnKill(ctx context.Context, scope *EventScope, player *models.Player, data *models.PlayerDeathData, firstBlood bool) error {
	if !l.tracked(scope) {
		return nil
	}
	records := &player.Stats.Records

	if firstBlood && scope.Match.StartedAt != nil {
		elapsed := time.Now().UnixMilli() - *scope.Match.StartedAt
		if records.FastestFirstBlood == nil || elapsed < records.FastestFirstBlood.Time {
			records.FastestFirstBlood = &models.FirstBloodRecord{
				MatchID:  scope.Match.ID,
				Attacker: *data.Attacker,
				Victim:   data.Victim,
				Time:     elapsed,
			}
		}
	}

	if data.Distance != nil && data.Cause != models.DamageCauseFall &&
		len(scope.Match.Participants) >= projectileRecordMinParticipants {
		if records.LongestProjectileKill == nil || *data.Distance > records.LongestProjectileKill.Distance {
			records.LongestProjectileKill = &models.ProjectileRecord{
				MatchID:  scope.Match.ID,
				Player:   player.ToSimple(),
				Distance: *data.Distance,
			}
		}
	}
	return nil
}

func (l PlayerRecordListener) OnWoolPlace(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	if !l.tracked(scope) {
		return nil
	}
	records := &player.Stats.Records
	if records.FastestWoolCapture == nil || heldTime < records.FastestWoolCapture.Value {
		records.FastestWoolCapture = &models.DurationRecord{
			MatchID: scope.Match.ID,
			Player:  player.ToSimple(),
			Value:   heldTime,
		}
	}
	return nil
}

func (l PlayerRecordListener) OnFlagPlace(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	if !l.tracked(scope) {
		return nil
	}
	records := &player.Stats.Records
	if records.FastestFlagCapture == nil || heldTime < records.FastestFlagCapture.Value {
		records.FastestFlagCapture = &models.DurationRecord{
			MatchID: scope.Match.ID,
			Player:  player.ToSimple(),
			Value:   heldTime,
		}
	}
	return nil
}

func (l PlayerRecordListener) OnMatchEnd(ctx context.Context, scope *EventScope, player *models.Player, data *models.MatchEndData) error {
	if !l.tracked(scope) {
		return nil
	}
	participant := scope.Participant
	records := &player.Stats.Records

	if records.KillsInMatch == nil || participant.Stats.Kills > records.KillsInMatch.Value {
		records.KillsInMatch = &models.CountRecord{
			MatchID: scope.Match.ID,
			Player:  player.ToSimple(),
			Value:   participant.Stats.Kills,
		}
	}
	if records.DeathsInMatch == nil || participant.Stats.Deaths > records.DeathsInMatch.Value {
		records.DeathsInMatch = &models.CountRecord{
			MatchID: scope.Match.ID,
			Player:  player.ToSimple(),
			Value:   participant.Stats.Deaths,
		}
	}
	return nil
}
