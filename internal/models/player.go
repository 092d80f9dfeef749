package models

// SimplePlayer is the embedded identity reference stored inside sessions,
// punishments, deaths and records instead of the full document.
type SimplePlayer struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type Player struct {
	ID                string                   `json:"_id" bson:"_id"`
	Name              string                   `json:"name" bson:"name"`
	NameLower         string                   `json:"nameLower" bson:"nameLower"`
	IPs               []string                 `json:"ips" bson:"ips"`
	FirstJoinedAt     int64                    `json:"firstJoinedAt" bson:"firstJoinedAt"`
	LastJoinedAt      int64                    `json:"lastJoinedAt" bson:"lastJoinedAt"`
	LastSessionID     *string                  `json:"lastSessionId" bson:"lastSessionId"`
	RankIDs           []string                 `json:"rankIds" bson:"rankIds"`
	TagIDs            []string                 `json:"tagIds" bson:"tagIds"`
	ActiveTagID       *string                  `json:"activeTagId" bson:"activeTagId"`
	ActiveJoinSoundID *string                  `json:"activeJoinSoundId" bson:"activeJoinSoundId"`
	Stats             PlayerStats              `json:"stats" bson:"stats"`
	GamemodeStats     map[Gamemode]PlayerStats `json:"gamemodeStats" bson:"gamemodeStats"`
	Notes             []StaffNote              `json:"notes" bson:"notes"`
}

func (p *Player) ToSimple() SimplePlayer {
	return SimplePlayer{Name: p.Name, ID: p.ID}
}

// IDName is the member format used in leaderboard sorted sets.
func (p *Player) IDName() string {
	return p.ID + "/" + p.Name
}

// SanitizedCopy strips fields that must never leave the API unauthenticated.
func (p *Player) SanitizedCopy() *Player {
	cp := *p
	cp.IPs = []string{}
	cp.Notes = []StaffNote{}
	cp.LastSessionID = nil
	return &cp
}

// StatsForGamemode returns the per-gamemode stat block, inserting a zero
// block first if the player has never played the gamemode. Callers mutate
// the returned pointer; the map entry is written back on the next save.
func (p *Player) StatsForGamemode(gm Gamemode) *PlayerStats {
	if p.GamemodeStats == nil {
		p.GamemodeStats = make(map[Gamemode]PlayerStats)
	}
	if _, ok := p.GamemodeStats[gm]; !ok {
		p.GamemodeStats[gm] = NewPlayerStats()
	}
	stats := p.GamemodeStats[gm]
	return &stats
}

// PutGamemodeStats writes a mutated per-gamemode block back into the map.
func (p *Player) PutGamemodeStats(gm Gamemode, stats PlayerStats) {
	if p.GamemodeStats == nil {
		p.GamemodeStats = make(map[Gamemode]PlayerStats)
	}
	p.GamemodeStats[gm] = stats
}
