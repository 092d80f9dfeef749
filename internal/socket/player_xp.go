package socket

import (
	"context"
	"fmt"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// PlayerXPListener converts match activity into XP awards and pushes a
// gain notification down the socket for each one.
type PlayerXPListener struct {
	BaseListener[models.Player]
}

func (PlayerXPListener) OnKill(ctx context.Context, scope *EventScope, player *models.Player, data *models.PlayerDeathData, firstBlood bool) error {
	awardXP(ctx, scope, player, XPKill, "Kill", true, false)
	if firstBlood {
		awardXP(ctx, scope, player, XPFirstBlood, "First blood", true, false)
	}
	return nil
}

func (PlayerXPListener) OnDeath(ctx context.Context, scope *EventScope, player *models.Player, data *models.PlayerDeathData, firstBlood bool) error {
	awardXP(ctx, scope, player, XPDeath, "Death", false, false)
	return nil
}

func (PlayerXPListener) OnKillstreak(ctx context.Context, scope *EventScope, player *models.Player, amount int) error {
	awardXP(ctx, scope, player, XPKillstreakCoefficient*amount, fmt.Sprintf("Killstreak x%d", amount), true, false)
	return nil
}

func (PlayerXPListener) OnDestroyableDamage(ctx context.Context, scope *EventScope, player *models.Player, destroyable *models.DestroyableGoal, damage int) error {
	if destroyable == nil || destroyable.BreaksRequired <= 0 {
		return nil
	}
	awardXP(ctx, scope, player, (XPDestroyableWhole/destroyable.BreaksRequired)*damage, "Damaged objective", true, false)
	return nil
}

func (PlayerXPListener) OnCoreLeak(ctx context.Context, scope *EventScope, player *models.Player, percentage float64, blockCount int) error {
	awardXP(ctx, scope, player, int(percentage*XPDestroyableWhole), "Leaked core", true, false)
	return nil
}

func (PlayerXPListener) OnControlPointCapture(ctx context.Context, scope *EventScope, player *models.Player, contributors int) error {
	gain := XPPointCaptureMax - (contributors+1)*10
	if gain < 20 {
		gain = 20
	}
	awardXP(ctx, scope, player, gain, "Captured point", true, false)
	return nil
}

func (PlayerXPListener) OnFlagPlace(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	bonus := XPFlagTimeBonusMax - int(heldTime/1000)
	if bonus < 0 {
		bonus = 0
	}
	awardXP(ctx, scope, player, XPFlagObjective+bonus, "Captured flag", true, false)
	return nil
}

func (PlayerXPListener) OnFlagPickup(ctx context.Context, scope *EventScope, player *models.Player) error {
	awardXP(ctx, scope, player, XPFlagObjective, "Picked up flag", true, false)
	return nil
}

func (PlayerXPListener) OnFlagDefend(ctx context.Context, scope *EventScope, player *models.Player) error {
	awardXP(ctx, scope, player, XPFlagObjective, "Defended flag", true, false)
	return nil
}

func (PlayerXPListener) OnWoolPlace(ctx context.Context, scope *EventScope, player *models.Player, heldTime int64) error {
	awardXP(ctx, scope, player, XPWoolObjective, "Captured wool", true, false)
	return nil
}

func (PlayerXPListener) OnWoolPickup(ctx context.Context, scope *EventScope, player *models.Player) error {
	awardXP(ctx, scope, player, XPWoolObjective, "Picked up wool", true, false)
	return nil
}

func (PlayerXPListener) OnWoolDefend(ctx context.Context, scope *EventScope, player *models.Player) error {
	awardXP(ctx, scope, player, XPWoolObjective, "Defended wool", true, false)
	return nil
}

func (PlayerXPListener) OnMatchEnd(ctx context.Context, scope *EventScope, player *models.Player, data *models.MatchEndData) error {
	participant := scope.Participant
	if participant.Stats.GamePlaytime <= participationCutoff(scope.Match.Length()) {
		return nil
	}
	switch data.ResultFor(scope.Match, participant) {
	case models.MatchResultWin:
		awardXP(ctx, scope, player, XPWin, "Victory", true, true)
	case models.MatchResultLose:
		awardXP(ctx, scope, player, XPLoss, "Defeat", true, true)
	case models.MatchResultTie:
		awardXP(ctx, scope, player, XPDraw, "Tie", true, true)
	}
	return nil
}
