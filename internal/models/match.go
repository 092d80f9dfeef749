package models

import "time"

type MatchState string

const (
	MatchStatePre        MatchState = "PRE"
	MatchStateInProgress MatchState = "IN_PROGRESS"
	MatchStatePost       MatchState = "POST"
)

type MatchResult string

const (
	MatchResultWin          MatchResult = "WIN"
	MatchResultLose         MatchResult = "LOSE"
	MatchResultTie          MatchResult = "TIE"
	MatchResultIntermediate MatchResult = "INTERMEDIATE"
)

type Party struct {
	Name  string `json:"name" bson:"name"`
	Alias string `json:"alias" bson:"alias"`
	Color string `json:"color" bson:"color"`
	Min   int    `json:"min" bson:"min"`
	Max   int    `json:"max" bson:"max"`
}

type FirstBlood struct {
	Attacker SimplePlayer `json:"attacker" bson:"attacker"`
	Victim   SimplePlayer `json:"victim" bson:"victim"`
	Date     int64        `json:"date" bson:"date"`
}

type Match struct {
	ID           string                 `json:"_id" bson:"_id"`
	LoadedAt     int64                  `json:"loadedAt" bson:"loadedAt"`
	StartedAt    *int64                 `json:"startedAt" bson:"startedAt"`
	EndedAt      *int64                 `json:"endedAt" bson:"endedAt"`
	Level        Level                  `json:"level" bson:"level"`
	Parties      map[string]Party       `json:"parties" bson:"parties"`
	Participants map[string]Participant `json:"participants" bson:"participants"`
	ServerID     string                 `json:"serverId" bson:"serverId"`
	FirstBlood   *FirstBlood            `json:"firstBlood" bson:"firstBlood"`
}

// State derives the lifecycle phase from the timestamps: loaded but not
// started is PRE, started but not ended is IN_PROGRESS, ended is POST.
func (m *Match) State() MatchState {
	switch {
	case m.StartedAt == nil:
		return MatchStatePre
	case m.EndedAt == nil:
		return MatchStateInProgress
	default:
		return MatchStatePost
	}
}

// Length is the elapsed match time in milliseconds. For a live match the
// current wall clock stands in for the end time.
func (m *Match) Length() int64 {
	if m.StartedAt == nil {
		return 0
	}
	end := time.Now().UnixMilli()
	if m.EndedAt != nil {
		end = *m.EndedAt
	}
	return end - *m.StartedAt
}

// IsTrackingStats reports whether stat listeners mutate lifetime player
// stats for this match. Arcade levels are exhibition only.
func (m *Match) IsTrackingStats() bool {
	for _, gm := range m.Level.Gamemodes {
		if gm == GamemodeArcade {
			return false
		}
	}
	return true
}

func (m *Match) Participant(id string) (Participant, bool) {
	p, ok := m.Participants[id]
	return p, ok
}

// SaveParticipant writes a mutated participant back into the match.
func (m *Match) SaveParticipant(p Participant) {
	if m.Participants == nil {
		m.Participants = make(map[string]Participant)
	}
	m.Participants[p.ID] = p
}
