package leaderboard

import (
	"math"

	"github.com/jorgeberrex/mars-api/internal/models"
)

// ScoreType names one tracked metric. The string form is used verbatim in
// Redis keys and URL parameters.
type ScoreType string

const (
	ScoreKills                    ScoreType = "KILLS"
	ScoreDeaths                   ScoreType = "DEATHS"
	ScoreFirstBloods              ScoreType = "FIRST_BLOODS"
	ScoreWins                     ScoreType = "WINS"
	ScoreLosses                   ScoreType = "LOSSES"
	ScoreTies                     ScoreType = "TIES"
	ScoreXP                       ScoreType = "XP"
	ScoreMessagesSent             ScoreType = "MESSAGES_SENT"
	ScoreMatchesPlayed            ScoreType = "MATCHES_PLAYED"
	ScoreServerPlaytime           ScoreType = "SERVER_PLAYTIME"
	ScoreGamePlaytime             ScoreType = "GAME_PLAYTIME"
	ScoreCoreLeaks                ScoreType = "CORE_LEAKS"
	ScoreCoreBlockDestroys        ScoreType = "CORE_BLOCK_DESTROYS"
	ScoreDestroyableDestroys      ScoreType = "DESTROYABLE_DESTROYS"
	ScoreDestroyableBlockDestroys ScoreType = "DESTROYABLE_BLOCK_DESTROYS"
	ScoreFlagCaptures             ScoreType = "FLAG_CAPTURES"
	ScoreFlagPickups              ScoreType = "FLAG_PICKUPS"
	ScoreFlagDrops                ScoreType = "FLAG_DROPS"
	ScoreFlagDefends              ScoreType = "FLAG_DEFENDS"
	ScoreFlagHoldTime             ScoreType = "FLAG_HOLD_TIME"
	ScoreWoolCaptures             ScoreType = "WOOL_CAPTURES"
	ScoreWoolPickups              ScoreType = "WOOL_PICKUPS"
	ScoreWoolDrops                ScoreType = "WOOL_DROPS"
	ScoreWoolDefends              ScoreType = "WOOL_DEFENDS"
	ScoreControlPointCaptures     ScoreType = "CONTROL_POINT_CAPTURES"
	ScoreHighestKillstreak        ScoreType = "HIGHEST_KILLSTREAK"
)

// AllScoreTypes in declaration order.
var AllScoreTypes = []ScoreType{
	ScoreKills, ScoreDeaths, ScoreFirstBloods, ScoreWins, ScoreLosses,
	ScoreTies, ScoreXP, ScoreMessagesSent, ScoreMatchesPlayed,
	ScoreServerPlaytime, ScoreGamePlaytime, ScoreCoreLeaks,
	ScoreCoreBlockDestroys, ScoreDestroyableDestroys,
	ScoreDestroyableBlockDestroys, ScoreFlagCaptures, ScoreFlagPickups,
	ScoreFlagDrops, ScoreFlagDefends, ScoreFlagHoldTime, ScoreWoolCaptures,
	ScoreWoolPickups, ScoreWoolDrops, ScoreWoolDefends,
	ScoreControlPointCaptures, ScoreHighestKillstreak,
}

// publicScoreTypes can be fetched through the HTTP endpoint. Playtime and
// chat volume boards exist for internal bookkeeping only.
var publicScoreTypes = map[ScoreType]bool{
	ScoreKills: true, ScoreDeaths: true, ScoreFirstBloods: true,
	ScoreWins: true, ScoreLosses: true, ScoreTies: true, ScoreXP: true,
	ScoreCoreLeaks: true, ScoreCoreBlockDestroys: true,
	ScoreDestroyableDestroys: true, ScoreDestroyableBlockDestroys: true,
	ScoreFlagCaptures: true, ScoreFlagPickups: true, ScoreFlagDrops: true,
	ScoreFlagDefends: true, ScoreFlagHoldTime: true, ScoreWoolCaptures: true,
	ScoreWoolPickups: true, ScoreWoolDrops: true, ScoreWoolDefends: true,
	ScoreControlPointCaptures: true, ScoreHighestKillstreak: true,
}

func (s ScoreType) IsPublic() bool {
	return publicScoreTypes[s]
}

// ParseScoreType accepts the SCREAMING_SNAKE_CASE wire form.
func ParseScoreType(raw string) (ScoreType, bool) {
	st := ScoreType(raw)
	for _, known := range AllScoreTypes {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// ScoreOf extracts the metric value from a lifetime stat block, used when
// rebuilding the all-time boards from Mongo. Playtime values outside
// uint32 range count as 0, matching the live increment path.
func ScoreOf(st ScoreType, stats *models.PlayerStats) int64 {
	switch st {
	case ScoreKills:
		return int64(stats.Kills)
	case ScoreDeaths:
		return int64(stats.Deaths)
	case ScoreFirstBloods:
		return int64(stats.FirstBloods)
	case ScoreWins:
		return int64(stats.Wins)
	case ScoreLosses:
		return int64(stats.Losses)
	case ScoreTies:
		return int64(stats.Ties)
	case ScoreXP:
		return int64(stats.XP)
	case ScoreMessagesSent:
		return int64(stats.Messages.Total())
	case ScoreMatchesPlayed:
		return int64(stats.Matches)
	case ScoreServerPlaytime:
		return clampU32(stats.ServerPlaytime)
	case ScoreGamePlaytime:
		return clampU32(stats.GamePlaytime)
	case ScoreCoreLeaks:
		return int64(stats.Objectives.CoreLeaks)
	case ScoreCoreBlockDestroys:
		return int64(stats.Objectives.CoreBlockDestroys)
	case ScoreDestroyableDestroys:
		return int64(stats.Objectives.DestroyableDestroys)
	case ScoreDestroyableBlockDestroys:
		return int64(stats.Objectives.DestroyableBlockDestroys)
	case ScoreFlagCaptures:
		return int64(stats.Objectives.FlagCaptures)
	case ScoreFlagPickups:
		return int64(stats.Objectives.FlagPickups)
	case ScoreFlagDrops:
		return int64(stats.Objectives.FlagDrops)
	case ScoreFlagDefends:
		return int64(stats.Objectives.FlagDefends)
	case ScoreFlagHoldTime:
		return clampU32(stats.Objectives.TotalFlagHoldTime)
	case ScoreWoolCaptures:
		return int64(stats.Objectives.WoolCaptures)
	case ScoreWoolPickups:
		return int64(stats.Objectives.WoolPickups)
	case ScoreWoolDrops:
		return int64(stats.Objectives.WoolDrops)
	case ScoreWoolDefends:
		return int64(stats.Objectives.WoolDefends)
	case ScoreControlPointCaptures:
		return int64(stats.Objectives.ControlPointCaptures)
	case ScoreHighestKillstreak:
		return int64(stats.HighestKillstreak())
	}
	return 0
}

func clampU32(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return 0
	}
	return v
}
