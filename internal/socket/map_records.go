package socket

import (
	"context"
	"time"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// Projectile kills only count toward the distance record in real games:
// small lobbies make sniping records trivial, and fall kills carry a
// distance without being shots.
const projectileRecordMinParticipants = 6

// MapRecordListener keeps the per-level bests up to date during play.
type MapRecordListener struct {
	BaseListener[models.Participant]
}

func (MapRecordListener) OnKill(ctx context.Context, scope *EventScope, p *models.Participant, data *models.PlayerDeathData, firstBlood bool) error {
	records := &scope.Match.Level.Records

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
				Player:   p.ToSimplePlayer(),
				Distance: *data.Distance,
			}
		}
	}
	return nil
}

func (MapRecordListener) OnKillstreak(ctx context.Context, scope *EventScope, p *models.Participant, amount int) error {
	records := &scope.Match.Level.Records
	if records.HighestKillstreak == nil || amount > records.HighestKillstreak.Value {
		records.HighestKillstreak = &models.CountRecord{
			MatchID: scope.Match.ID,
			Player:  p.ToSimplePlayer(),
			Value:   amount,
		}
	}
	return nil
}

func (MapRecordListener) OnWoolPlace(ctx context.Context, scope *EventScope, p *models.Participant, heldTime int64) error {
	records := &scope.Match.Level.Records
	if records.FastestWoolCapture == nil || heldTime < records.FastestWoolCapture.Value {
		records.FastestWoolCapture = &models.DurationRecord{
			MatchID: scope.Match.ID,
			Player:  p.ToSimplePlayer(),
			Value:   heldTime,
		}
	}
	return nil
}

func (MapRecordListener) OnFlagPlace(ctx context.Context, scope *EventScope, p *models.Participant, heldTime int64) error {
	records := &scope.Match.Level.Records
	if records.FastestFlagCapture == nil || heldTime < records.FastestFlagCapture.Value {
		records.FastestFlagCapture = &models.DurationRecord{
			MatchID: scope.Match.ID,
			Player:  p.ToSimplePlayer(),
			Value:   heldTime,
		}
	}
	return nil
}

func (MapRecordListener) OnMatchEnd(ctx context.Context, scope *EventScope, p *models.Participant, data *models.MatchEndData) error {
	records := &scope.Match.Level.Records
	if records.KillsInMatch == nil || p.Stats.Kills > records.KillsInMatch.Value {
		records.KillsInMatch = &models.CountRecord{
			MatchID: scope.Match.ID,
			Player:  p.ToSimplePlayer(),
			Value:   p.Stats.Kills,
		}
	}
	if records.DeathsInMatch == nil || p.Stats.Deaths > records.DeathsInMatch.Value {
		records.DeathsInMatch = &models.CountRecord{
			MatchID: scope.Match.ID,
			Player:  p.ToSimplePlayer(),
			Value:   p.Stats.Deaths,
		}
	}
	return nil
}
