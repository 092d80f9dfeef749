package socket

import (
	"context"

	"github.com/jorgeberrex/mars-api/internal/leaderboard"
	"github.com/jorgeberrex/mars-api/internal/models"
)

// LeaderboardListener mirrors stat changes onto the Redis boards. Nothing
// here runs for arcade matches.
type LeaderboardListener struct {
	BaseListener[models.Participant]
}

func (LeaderboardListener) tracked(scope *EventScope) bool {
	return scope.Match.IsTrackingStats()
}

func (l LeaderboardListener) OnKill(ctx context.Context, scope *EventScope, p *models.Participant, data *models.PlayerDeathData, firstBlood bool) error {
	if !l.tracked(scope) {
		return nil
	}
	boards := scope.Server.svc.Boards
	boards.Increment(ctx, leaderboard.ScoreKills, p.IDName(), 1)
	if firstBlood {
		boards.Increment(ctx, leaderboard.ScoreFirstBloods, p.IDName(), 1)
	}
	return nil
}

func (l LeaderboardListener) OnDeath(ctx context.Context, scope *EventScope, p *models.Participant, data *models.PlayerDeathData, firstBlood bool) error {
	if !l.tracked(scope) {
		return nil
	}
	scope.Server.svc.Boards.Increment(ctx, leaderboard.ScoreDeaths, p.IDName(), 1)
	return nil
}

func (l LeaderboardListener) OnKillstreak(ctx context.Context, scope *EventScope, p *models.Participant, amount int) error {
	if !l.tracked(scope) {
		return nil
	}
	scope.Server.svc.Boards.SetIfHigher(ctx, leaderboard.ScoreHighestKillstreak, p.IDName(), int64(amount))
	return nil
}

func (l LeaderboardListener) OnMatchEnd(ctx context.Context, scope *EventScope, p *models.Participant, data *models.MatchEndData) error {
	if !l.tracked(scope) {
		return nil
	}
	boards := scope.Server.svc.Boards
	member := p.IDName()

	switch data.ResultFor(scope.Match, p) {
	case models.MatchResultWin:
		boards.Increment(ctx, leaderboard.ScoreWins, member, 1)
	case models.MatchResultLose:
		boards.Increment(ctx, leaderboard.ScoreLosses, member, 1)
	case models.MatchResultTie:
		boards.Increment(ctx, leaderboard.ScoreTies, member, 1)
	}

	boards.Increment(ctx, leaderboard.ScoreMatchesPlayed, member, 1)
	if total := p.Stats.Messages.Total(); total > 0 {
		boards.Increment(ctx, leaderboard.ScoreMessagesSent, member, int64(total))
	}
	if playtime := clampPlaytime(p.Stats.GamePlaytime); playtime > 0 {
		boards.Increment(ctx, leaderboard.ScoreGamePlaytime, member, playtime)
	}
	return nil
}

func (l LeaderboardListener) OnDestroyableDestroy(ctx context.Context, scope *EventScope, p *models.Participant, percentage float64, blockCount int) error {
	if !l.tracked(scope) {
		return nil
	}
	boards := scope.Server.svc.Boards
	boards.Increment(ctx, leaderboard.ScoreDestroyableDestroys, p.IDName(), 1)
	boards.Increment(ctx, leaderboard.ScoreDestroyableBlockDestroys, p.IDName(), int64(blockCount))
	return nil
}

func (l LeaderboardListener) OnCoreLeak(ctx context.Context, scope *EventScope, p *models.Participant, percentage float64, blockCount int) error {
	if !l.tracked(scope) {
		return nil
	}
	boards := scope.Server.svc.Boards
	boards.Increment(ctx, leaderboard.ScoreCoreLeaks, p.IDName(), 1)
	boards.Increment(ctx, leaderboard.ScoreCoreBlockDestroys, p.IDName(), 1)
	return nil
}

func (l LeaderboardListener) OnControlPointCapture(ctx context.Context, scope *EventScope, p *models.Participant, contributors int) error {
	if !l.tracked(scope) {
		return nil
	}
	scope.Server.svc.Boards.Increment(ctx, leaderboard.ScoreControlPointCaptures, p.IDName(), 1)
	return nil
}

func (l LeaderboardListener) OnFlagPlace(ctx context.Context, scope *EventScope, p *models.Participant, heldTime int64) error {
	if !l.tracked(scope) {
		return nil
	}
	boards := scope.Server.svc.Boards
	boards.Increment(ctx, leaderboard.ScoreFlagCaptures, p.IDName(), 1)
	boards.Increment(ctx, leaderboard.ScoreFlagHoldTime, p.IDName(), heldTime)
	return nil
}

func (l LeaderboardListener) OnFlagPickup(ctx context.Context, scope *EventScope, p *models.Participant) error {
	if !l.tracked(scope) {
		return nil
	}
	scope.Server.svc.Boards.Increment(ctx, leaderboard.ScoreFlagPickups, p.IDName(), 1)
	return nil
}

func (l LeaderboardListener) OnFlagDrop(ctx context.Context, scope *EventScope, p *models.Participant, heldTime int64) error {
	if !l.tracked(scope) {
		return nil
	}
	boards := scope.Server.svc.Boards
	boards.Increment(ctx, leaderboard.ScoreFlagDrops, p.IDName(), 1)
	boards.Increment(ctx, leaderboard.ScoreFlagHoldTime, p.IDName(), heldTime)
	return nil
}

func (l LeaderboardListener) OnFlagDefend(ctx context.Context, scope *EventScope, p *models.Participant) error {
	if !l.tracked(scope) {
		return nil
	}
	scope.Server.svc.Boards.Increment(ctx, leaderboard.ScoreFlagDefends, p.IDName(), 1)
	return nil
}

func (l LeaderboardListener) OnWoolPlace(ctx context.Context, scope *EventScope, p *models.Participant, heldTime int64) error {
	if !l.tracked(scope) {
		return nil
	}
	scope.Server.svc.Boards.Increment(ctx, leaderboard.ScoreWoolCaptures, p.IDName(), 1)
	return nil
}

func (l LeaderboardListener) OnWoolPickup(ctx context.Context, scope *EventScope, p *models.Participant) error {
	if !l.tracked(scope) {
		return nil
	}
	scope.Server.svc.Boards.Increment(ctx, leaderboard.ScoreWoolPickups, p.IDName(), 1)
	return nil
}

func (l LeaderboardListener) OnWoolDrop(ctx context.Context, scope *EventScope, p *models.Participant) error {
	if !l.tracked(scope) {
		return nil
	}
	scope.Server.svc.Boards.Increment(ctx, leaderboard.ScoreWoolDrops, p.IDName(), 1)
	return nil
}

func (l LeaderboardListener) OnWoolDefend(ctx context.Context, scope *EventScope, p *models.Participant) error {
	if !l.tracked(scope) {
		return nil
	}
	scope.Server.svc.Boards.Increment(ctx, leaderboard.ScoreWoolDefends, p.IDName(), 1)
	return nil
}

// clampPlaytime saturates into uint32 range; anomalous values (clock skew,
// pre-epoch timestamps) count as zero rather than poisoning the board.
func clampPlaytime(ms int64) int64 {
	if ms < 0 || ms > 0xFFFFFFFF {
		return 0
	}
	return ms
}
