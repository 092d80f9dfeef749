package socket

import (
	"context"

	"github.com/jorgeberrex/mars-api/internal/leaderboard"
	"github.com/jorgeberrex/mars-api/internal/models"
)

// XP awards per cause. Objective values dwarf kill values on purpose:
// playing the map has to beat farming fights.
const (
	XPPerLevel = 5000

	// Levels at or below this get the new-player multiplier.
	XPBeginnerAssistMax = 10

	XPWin                   = 200
	XPLoss                  = 100
	XPDraw                  = 150
	XPKill                  = 40
	XPDeath                 = 1
	XPFirstBlood            = 7
	XPWoolObjective         = 60
	XPFlagObjective         = 150
	XPFlagTimeBonusMax      = 100
	XPPointCaptureMax       = 100
	XPDestroyableWhole      = 200
	XPKillstreakCoefficient = 10
)

// LevelAt converts lifetime XP to a display level; fresh accounts start at
// level 1.
func LevelAt(xp int) int {
	return (xp + XPPerLevel) / XPPerLevel
}

// Gain applies the new-player boost: raw XP is multiplied by a factor that
// tapers from 10x at level 1 to 1x at level 10 and beyond.
func Gain(raw, level int) int {
	multiplier := XPBeginnerAssistMax - level
	if multiplier < 1 {
		multiplier = 1
	}
	return raw * multiplier
}

// awardXP credits a player, notifies the game server and bumps the XP
// board. rawOnly skips the new-player boost (match outcome awards), but
// the boost is never allowed to pay less than the raw amount.
func awardXP(ctx context.Context, scope *EventScope, player *models.Player, raw int, reason string, notify, rawOnly bool) {
	increment := raw
	if !rawOnly {
		if boosted := Gain(raw, LevelAt(player.Stats.XP)); boosted > increment {
			increment = boosted
		}
	}
	player.Stats.XP += increment

	scope.Server.Call(ctx, models.EventPlayerXPGain, models.PlayerXPGainData{
		PlayerID: player.ID,
		Gain:     increment,
		Reason:   reason,
		Notify:   notify,
	})
	scope.Server.svc.Boards.Increment(ctx, leaderboard.ScoreXP, player.IDName(), int64(increment))
}
