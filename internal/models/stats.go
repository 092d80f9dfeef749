package models

import "strconv"

// PlayerStats is the lifetime stat block. A copy of the same shape is kept
// per gamemode under Player.GamemodeStats.
type PlayerStats struct {
	XP                  int              `json:"xp" bson:"xp"`
	ServerPlaytime      int64            `json:"serverPlaytime" bson:"serverPlaytime"`
	GamePlaytime        int64            `json:"gamePlaytime" bson:"gamePlaytime"`
	Kills               int              `json:"kills" bson:"kills"`
	Deaths              int              `json:"deaths" bson:"deaths"`
	VoidKills           int              `json:"voidKills" bson:"voidKills"`
	VoidDeaths          int              `json:"voidDeaths" bson:"voidDeaths"`
	FirstBloods         int              `json:"firstBloods" bson:"firstBloods"`
	FirstBloodsSuffered int              `json:"firstBloodsSuffered" bson:"firstBloodsSuffered"`
	Objectives          PlayerObjectives `json:"objectives" bson:"objectives"`
	BowShotsTaken       int              `json:"bowShotsTaken" bson:"bowShotsTaken"`
	BowShotsHit         int              `json:"bowShotsHit" bson:"bowShotsHit"`
	BlocksPlaced        map[string]int   `json:"blocksPlaced" bson:"blocksPlaced"`
	BlocksBroken        map[string]int   `json:"blocksBroken" bson:"blocksBroken"`
	DamageTaken         float64          `json:"damageTaken" bson:"damageTaken"`
	DamageGiven         float64          `json:"damageGiven" bson:"damageGiven"`
	DamageGivenBow      float64          `json:"damageGivenBow" bson:"damageGivenBow"`
	Messages            PlayerMessages   `json:"messages" bson:"messages"`
	Wins                int              `json:"wins" bson:"wins"`
	Losses              int              `json:"losses" bson:"losses"`
	Ties                int              `json:"ties" bson:"ties"`
	Matches             int              `json:"matches" bson:"matches"`
	MatchesPresentStart int              `json:"matchesPresentStart" bson:"matchesPresentStart"`
	MatchesPresentFull  int              `json:"matchesPresentFull" bson:"matchesPresentFull"`
	MatchesPresentEnd   int              `json:"matchesPresentEnd" bson:"matchesPresentEnd"`
	Records             PlayerRecords    `json:"records" bson:"records"`
	WeaponKills         map[string]int   `json:"weaponKills" bson:"weaponKills"`
	WeaponDeaths        map[string]int   `json:"weaponDeaths" bson:"weaponDeaths"`
	Killstreaks         map[string]int   `json:"killstreaks" bson:"killstreaks"`
	KillstreaksEnded    map[string]int   `json:"killstreaksEnded" bson:"killstreaksEnded"`
}

// NewPlayerStats returns a zero stat block with its maps allocated.
func NewPlayerStats() PlayerStats {
	return PlayerStats{
		BlocksPlaced:     map[string]int{},
		BlocksBroken:     map[string]int{},
		WeaponKills:      map[string]int{},
		WeaponDeaths:     map[string]int{},
		Killstreaks:      map[string]int{},
		KillstreaksEnded: map[string]int{},
	}
}

type PlayerMessages struct {
	Staff  int `json:"staff" bson:"staff"`
	Global int `json:"global" bson:"global"`
	Team   int `json:"team" bson:"team"`
}

func (m PlayerMessages) Total() int {
	return m.Staff + m.Global + m.Team
}

type PlayerObjectives struct {
	CoreLeaks                int   `json:"coreLeaks" bson:"coreLeaks"`
	CoreBlockDestroys        int   `json:"coreBlockDestroys" bson:"coreBlockDestroys"`
	DestroyableDestroys      int   `json:"destroyableDestroys" bson:"destroyableDestroys"`
	DestroyableBlockDestroys int   `json:"destroyableBlockDestroys" bson:"destroyableBlockDestroys"`
	FlagCaptures             int   `json:"flagCaptures" bson:"flagCaptures"`
	FlagPickups              int   `json:"flagPickups" bson:"flagPickups"`
	FlagDrops                int   `json:"flagDrops" bson:"flagDrops"`
	FlagDefends              int   `json:"flagDefends" bson:"flagDefends"`
	TotalFlagHoldTime        int64 `json:"totalFlagHoldTime" bson:"totalFlagHoldTime"`
	WoolCaptures             int   `json:"woolCaptures" bson:"woolCaptures"`
	WoolPickups              int   `json:"woolPickups" bson:"woolPickups"`
	WoolDrops                int   `json:"woolDrops" bson:"woolDrops"`
	WoolDefends              int   `json:"woolDefends" bson:"woolDefends"`
	ControlPointCaptures     int   `json:"controlPointCaptures" bson:"controlPointCaptures"`
}

type PlayerRecords struct {
	LongestSession        *SessionRecord    `json:"longestSession,omitempty" bson:"longestSession,omitempty"`
	LongestProjectileKill *ProjectileRecord `json:"longestProjectileKill,omitempty" bson:"longestProjectileKill,omitempty"`
	FastestWoolCapture    *DurationRecord   `json:"fastestWoolCapture,omitempty" bson:"fastestWoolCapture,omitempty"`
	FastestFlagCapture    *DurationRecord   `json:"fastestFlagCapture,omitempty" bson:"fastestFlagCapture,omitempty"`
	FastestFirstBlood     *FirstBloodRecord `json:"fastestFirstBlood,omitempty" bson:"fastestFirstBlood,omitempty"`
	KillsInMatch          *CountRecord      `json:"killsInMatch,omitempty" bson:"killsInMatch,omitempty"`
	DeathsInMatch         *CountRecord      `json:"deathsInMatch,omitempty" bson:"deathsInMatch,omitempty"`
}

type SessionRecord struct {
	SessionID string `json:"sessionId" bson:"sessionId"`
	Length    int64  `json:"length" bson:"length"`
}

type ProjectileRecord struct {
	MatchID  string       `json:"matchId" bson:"matchId"`
	Player   SimplePlayer `json:"player" bson:"player"`
	Distance int          `json:"distance" bson:"distance"`
}

// DurationRecord holds a best time in milliseconds (lower is better).
type DurationRecord struct {
	MatchID string       `json:"matchId" bson:"matchId"`
	Player  SimplePlayer `json:"player" bson:"player"`
	Value   int64        `json:"value" bson:"value"`
}

// CountRecord holds a best count in a single match (higher is better).
type CountRecord struct {
	MatchID string       `json:"matchId" bson:"matchId"`
	Player  SimplePlayer `json:"player" bson:"player"`
	Value   int          `json:"value" bson:"value"`
}

type FirstBloodRecord struct {
	MatchID  string       `json:"matchId" bson:"matchId"`
	Attacker SimplePlayer `json:"attacker" bson:"attacker"`
	Victim   SimplePlayer `json:"victim" bson:"victim"`
	Time     int64        `json:"time" bson:"time"`
}

// HighestKillstreak returns the largest streak bucket the player has reached.
// Killstreak histograms are keyed by the decimal streak milestone.
func (s *PlayerStats) HighestKillstreak() int {
	highest := 0
	for k, v := range s.Killstreaks {
		if v > 0 {
			if n, err := strconv.Atoi(k); err == nil && n > highest {
				highest = n
			}
		}
	}
	return highest
}
