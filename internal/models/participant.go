package models

// SimpleParticipant is the shape servers send in MATCH_START payloads.
type SimpleParticipant struct {
	Name      string  `json:"name"`
	ID        string  `json:"id"`
	PartyName *string `json:"partyName"`
}

// Participant is a player's presence in a single match. Its stat block is
// match-scoped and folded into the lifetime Player document at match end.
type Participant struct {
	Name               string           `json:"name" bson:"name"`
	ID                 string           `json:"id" bson:"id"`
	PartyName          *string          `json:"partyName" bson:"partyName"`
	LastPartyName      *string          `json:"lastPartyName" bson:"lastPartyName"`
	FirstJoinedMatchAt int64            `json:"firstJoinedMatchAt" bson:"firstJoinedMatchAt"`
	JoinedPartyAt      *int64           `json:"joinedPartyAt" bson:"joinedPartyAt"`
	LastLeftPartyAt    *int64           `json:"lastLeftPartyAt" bson:"lastLeftPartyAt"`
	Stats              ParticipantStats `json:"stats" bson:"stats"`
}

// NewParticipant seeds a participant from the simple form at join time.
func NewParticipant(sp SimpleParticipant, now int64) Participant {
	return Participant{
		Name:               sp.Name,
		ID:                 sp.ID,
		PartyName:          sp.PartyName,
		LastPartyName:      sp.PartyName,
		FirstJoinedMatchAt: now,
		JoinedPartyAt:      &now,
		Stats:              NewParticipantStats(),
	}
}

func (p *Participant) ToSimplePlayer() SimplePlayer {
	return SimplePlayer{Name: p.Name, ID: p.ID}
}

func (p *Participant) IDName() string {
	return p.ID + "/" + p.Name
}

// IsPlaying reports whether the participant is currently on a party.
func (p *Participant) IsPlaying() bool {
	return p.PartyName != nil
}

type Duel struct {
	Kills  int `json:"kills" bson:"kills"`
	Deaths int `json:"deaths" bson:"deaths"`
}

type ParticipantStats struct {
	GamePlaytime     int64            `json:"gamePlaytime" bson:"gamePlaytime"`
	TimeAway         int64            `json:"timeAway" bson:"timeAway"`
	Kills            int              `json:"kills" bson:"kills"`
	Deaths           int              `json:"deaths" bson:"deaths"`
	VoidKills        int              `json:"voidKills" bson:"voidKills"`
	VoidDeaths       int              `json:"voidDeaths" bson:"voidDeaths"`
	Objectives       PlayerObjectives `json:"objectives" bson:"objectives"`
	BowShotsTaken    int              `json:"bowShotsTaken" bson:"bowShotsTaken"`
	BowShotsHit      int              `json:"bowShotsHit" bson:"bowShotsHit"`
	BlocksPlaced     map[string]int   `json:"blocksPlaced" bson:"blocksPlaced"`
	BlocksBroken     map[string]int   `json:"blocksBroken" bson:"blocksBroken"`
	DamageTaken      float64          `json:"damageTaken" bson:"damageTaken"`
	DamageGiven      float64          `json:"damageGiven" bson:"damageGiven"`
	DamageGivenBow   float64          `json:"damageGivenBow" bson:"damageGivenBow"`
	Messages         PlayerMessages   `json:"messages" bson:"messages"`
	WeaponKills      map[string]int   `json:"weaponKills" bson:"weaponKills"`
	WeaponDeaths     map[string]int   `json:"weaponDeaths" bson:"weaponDeaths"`
	Killstreaks      map[string]int   `json:"killstreaks" bson:"killstreaks"`
	KillstreaksEnded map[string]int   `json:"killstreaksEnded" bson:"killstreaksEnded"`
	Duels            map[string]Duel  `json:"duels" bson:"duels"`
}

func NewParticipantStats() ParticipantStats {
	return ParticipantStats{
		BlocksPlaced:     map[string]int{},
		BlocksBroken:     map[string]int{},
		WeaponKills:      map[string]int{},
		WeaponDeaths:     map[string]int{},
		Killstreaks:      map[string]int{},
		KillstreaksEnded: map[string]int{},
		Duels:            map[string]Duel{},
	}
}
