package socket

import (
	"context"
	"strconv"
	"time"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// ParticipantStatListener accumulates raw match-scoped counters. It runs
// for every match regardless of stat tracking; whether the numbers ever
// reach a lifetime profile is decided downstream.
type ParticipantStatListener struct {
	BaseListener[models.Participant]
}

func (ParticipantStatListener) OnKill(ctx context.Context, scope *EventScope, p *models.Participant, data *models.PlayerDeathData, firstBlood bool) error {
	p.Stats.Kills++
	p.Stats.WeaponKills[data.SafeWeapon()]++

	duel := p.Stats.Duels[data.Victim.ID]
	duel.Kills++
	p.Stats.Duels[data.Victim.ID] = duel

	if data.IsVoid() {
		p.Stats.VoidKills++
	}
	return nil
}

func (ParticipantStatListener) OnDeath(ctx context.Context, scope *EventScope, p *models.Participant, data *models.PlayerDeathData, firstBlood bool) error {
	p.Stats.Deaths++
	if data.IsVoid() {
		p.Stats.VoidDeaths++
	}
	if data.IsMurder() {
		p.Stats.WeaponDeaths[data.SafeWeapon()]++

		duel := p.Stats.Duels[data.Attacker.ID]
		duel.Deaths++
		p.Stats.Duels[data.Attacker.ID] = duel
	}
	return nil
}

func (ParticipantStatListener) OnChat(ctx context.Context, scope *EventScope, p *models.Participant, data *models.PlayerChatData) error {
	switch data.Channel {
	case models.ChatChannelStaff:
		p.Stats.Messages.Staff++
	case models.ChatChannelGlobal:
		p.Stats.Messages.Global++
	case models.ChatChannelTeam:
		p.Stats.Messages.Team++
	}
	return nil
}

func (ParticipantStatListener) OnKillstreak(ctx context.Context, scope *EventScope, p *models.Participant, amount int) error {
	p.Stats.Killstreaks[strconv.Itoa(amount)]++
	return nil
}

func (ParticipantStatListener) OnKillstreakEnd(ctx context.Context, scope *EventScope, p *models.Participant, amount int) error {
	p.Stats.KillstreaksEnded[strconv.Itoa(amount)]++
	return nil
}

func (ParticipantStatListener) OnPartyJoin(ctx context.Context, scope *EventScope, p *models.Participant, partyName string) error {
	if p.LastLeftPartyAt != nil {
		p.Stats.TimeAway += time.Now().UnixMilli() - *p.LastLeftPartyAt
	}
	return nil
}

func (ParticipantStatListener) OnPartyLeave(ctx context.Context, scope *EventScope, p *models.Participant) error {
	if p.JoinedPartyAt != nil {
		p.Stats.GamePlaytime += time.Now().UnixMilli() - *p.JoinedPartyAt
	}
	return nil
}

func (ParticipantStatListener) OnDestroyableDamage(ctx context.Context, scope *EventScope, p *models.Participant, destroyable *models.DestroyableGoal, damage int) error {
	p.Stats.Objectives.DestroyableBlockDestroys += damage
	return nil
}

func (ParticipantStatListener) OnDestroyableDestroy(ctx context.Context, scope *EventScope, p *models.Participant, percentage float64, blockCount int) error {
	p.Stats.Objectives.DestroyableDestroys++
	return nil
}

func (ParticipantStatListener) OnCoreLeak(ctx context.Context, scope *EventScope, p *models.Participant, percentage float64, blockCount int) error {
	p.Stats.Objectives.CoreLeaks++
	p.Stats.Objectives.CoreBlockDestroys += blockCount
	return nil
}

func (ParticipantStatListener) OnControlPointCapture(ctx context.Context, scope *EventScope, p *models.Participant, contributors int) error {
	p.Stats.Objectives.ControlPointCaptures++
	return nil
}

func (ParticipantStatListener) OnFlagPlace(ctx context.Context, scope *EventScope, p *models.Participant, heldTime int64) error {
	p.Stats.Objectives.FlagCaptures++
	p.Stats.Objectives.TotalFlagHoldTime += heldTime
	return nil
}

func (ParticipantStatListener) OnFlagPickup(ctx context.Context, scope *EventScope, p *models.Participant) error {
	p.Stats.Objectives.FlagPickups++
	return nil
}

func (ParticipantStatListener) OnFlagDrop(ctx context.Context, scope *EventScope, p *models.Participant, heldTime int64) error {
	p.Stats.Objectives.FlagDrops++
	p.Stats.Objectives.TotalFlagHoldTime += heldTime
	return nil
}

func (ParticipantStatListener) OnFlagDefend(ctx context.Context, scope *EventScope, p *models.Participant) error {
	p.Stats.Objectives.FlagDefends++
	return nil
}

func (ParticipantStatListener) OnWoolPlace(ctx context.Context, scope *EventScope, p *models.Participant, heldTime int64) error {
	p.Stats.Objectives.WoolCaptures++
	return nil
}

func (ParticipantStatListener) OnWoolPickup(ctx context.Context, scope *EventScope, p *models.Participant) error {
	p.Stats.Objectives.WoolPickups++
	return nil
}

func (ParticipantStatListener) OnWoolDrop(ctx context.Context, scope *EventScope, p *models.Participant) error {
	p.Stats.Objectives.WoolDrops++
	return nil
}

func (ParticipantStatListener) OnWoolDefend(ctx context.Context, scope *EventScope, p *models.Participant) error {
	p.Stats.Objectives.WoolDefends++
	return nil
}

func (ParticipantStatListener) OnMatchEnd(ctx context.Context, scope *EventScope, p *models.Participant, data *models.MatchEndData) error {
	if big, ok := data.BigStats[p.ID]; ok {
		applyBigStats(&p.Stats, big)
	}
	if p.PartyName != nil && p.JoinedPartyAt != nil && scope.Match.EndedAt != nil {
		p.Stats.GamePlaytime += *scope.Match.EndedAt - *p.JoinedPartyAt
	}
	return nil
}

// applyBigStats folds the end-of-match bulk counters (blocks, bow, damage)
// the server batches instead of streaming per event.
func applyBigStats(stats *models.ParticipantStats, big models.BigStats) {
	for block, count := range big.Blocks.BlocksPlaced {
		stats.BlocksPlaced[block] += count
	}
	for block, count := range big.Blocks.BlocksBroken {
		stats.BlocksBroken[block] += count
	}
	stats.BowShotsTaken += big.BowShotsTaken
	stats.BowShotsHit += big.BowShotsHit
	stats.DamageGiven += big.DamageGiven
	stats.DamageTaken += big.DamageTaken
	stats.DamageGivenBow += big.DamageGivenBow
}
