package models

// EventType discriminates the compressed socket envelope. The same set is
// used for both directions of the connection.
type EventType string

const (
	// Inbound from game servers.
	EventMatchLoad           EventType = "MATCH_LOAD"
	EventMatchStart          EventType = "MATCH_START"
	EventMatchEnd            EventType = "MATCH_END"
	EventPlayerDeath         EventType = "PLAYER_DEATH"
	EventPlayerChat          EventType = "PLAYER_CHAT"
	EventKillstreak          EventType = "KILLSTREAK"
	EventPartyJoin           EventType = "PARTY_JOIN"
	EventPartyLeave          EventType = "PARTY_LEAVE"
	EventDestroyableDamage   EventType = "DESTROYABLE_DAMAGE"
	EventDestroyableDestroy  EventType = "DESTROYABLE_DESTROY"
	EventCoreLeak            EventType = "CORE_LEAK"
	EventCoreDamage          EventType = "CORE_DAMAGE"
	EventFlagCapture         EventType = "FLAG_CAPTURE"
	EventFlagPickup          EventType = "FLAG_PICKUP"
	EventFlagDrop            EventType = "FLAG_DROP"
	EventFlagDefend          EventType = "FLAG_DEFEND"
	EventWoolCapture         EventType = "WOOL_CAPTURE"
	EventWoolPickup          EventType = "WOOL_PICKUP"
	EventWoolDrop            EventType = "WOOL_DROP"
	EventWoolDefend          EventType = "WOOL_DEFEND"
	EventControlPointCapture EventType = "CONTROL_POINT_CAPTURE"

	// Outbound to game servers.
	EventForceMatchEnd    EventType = "FORCE_MATCH_END"
	EventMessage          EventType = "MESSAGE"
	EventPlayerXPGain     EventType = "PLAYER_XP_GAIN"
	EventDisconnectPlayer EventType = "DISCONNECT_PLAYER"
)

type ChatChannel string

const (
	ChatChannelStaff  ChatChannel = "STAFF"
	ChatChannelGlobal ChatChannel = "GLOBAL"
	ChatChannelTeam   ChatChannel = "TEAM"
)

type MatchLoadData struct {
	MapID   string          `json:"mapId"`
	Parties []Party         `json:"parties"`
	Goals   *GoalCollection `json:"goals"`
}

type MatchStartData struct {
	Participants []SimpleParticipant `json:"participants"`
}

type BigStats struct {
	Blocks         BlockInteractions `json:"blocks"`
	BowShotsTaken  int               `json:"bowShotsTaken"`
	BowShotsHit    int               `json:"bowShotsHit"`
	DamageGiven    float64           `json:"damageGiven"`
	DamageTaken    float64           `json:"damageTaken"`
	DamageGivenBow float64           `json:"damageGivenBow"`
}

type BlockInteractions struct {
	BlocksPlaced map[string]int `json:"blocksPlaced"`
	BlocksBroken map[string]int `json:"blocksBroken"`
}

type MatchEndData struct {
	WinningParties []string            `json:"winningParties"`
	BigStats       map[string]BigStats `json:"bigStats"`
}

// IsTie reports a drawn match: nobody won, or everybody did.
func (d *MatchEndData) IsTie(m *Match) bool {
	return len(d.WinningParties) == 0 || len(d.WinningParties) == len(m.Parties)
}

// ResultFor resolves the match outcome from one participant's perspective.
func (d *MatchEndData) ResultFor(m *Match, p *Participant) MatchResult {
	if d.IsTie(m) {
		return MatchResultTie
	}
	if p.LastPartyName == nil {
		return MatchResultIntermediate
	}
	for _, winner := range d.WinningParties {
		if winner == *p.LastPartyName {
			return MatchResultWin
		}
	}
	return MatchResultLose
}

type PlayerDeathData struct {
	Victim   SimplePlayer  `json:"victim"`
	Attacker *SimplePlayer `json:"attacker"`
	Weapon   *string       `json:"weapon"`
	Entity   *string       `json:"entity"`
	Distance *int          `json:"distance"`
	Key      string        `json:"key"`
	Cause    DamageCause   `json:"cause"`
}

// IsMurder reports a kill by another player rather than the environment.
func (d *PlayerDeathData) IsMurder() bool {
	return d.Attacker != nil && d.Attacker.ID != d.Victim.ID
}

func (d *PlayerDeathData) IsVoid() bool {
	return d.Cause == DamageCauseVoid
}

// SafeWeapon normalizes the weapon name for stat keys: ranged kills
// collapse to PROJECTILE, absent weapons to NONE.
func (d *PlayerDeathData) SafeWeapon() string {
	if d.Distance != nil && d.Cause != DamageCauseFall {
		return "PROJECTILE"
	}
	if d.Weapon != nil {
		return *d.Weapon
	}
	return "NONE"
}

// RawWeapon is the unnormalized weapon name used by gamemode stat keys.
func (d *PlayerDeathData) RawWeapon() string {
	if d.Weapon != nil {
		return *d.Weapon
	}
	return "NONE"
}

type PlayerChatData struct {
	Player       SimplePlayer `json:"player"`
	PlayerPrefix string       `json:"playerPrefix"`
	Channel      ChatChannel  `json:"channel"`
	Message      string       `json:"message"`
	ServerID     string       `json:"serverId"`
}

type KillstreakData struct {
	Amount int          `json:"amount"`
	Player SimplePlayer `json:"player"`
	Ended  bool         `json:"ended"`
}

type PartyJoinData struct {
	Player    SimpleParticipant `json:"player"`
	PartyName string            `json:"partyName"`
}

type PartyLeaveData struct {
	Player SimplePlayer `json:"player"`
}

type GoalContribution struct {
	PlayerID   string  `json:"playerId"`
	Percentage float64 `json:"percentage"`
	BlockCount int     `json:"blockCount"`
}

type DestroyableDamageData struct {
	DestroyableID string `json:"destroyableId"`
	Damage        int    `json:"damage"`
	PlayerID      string `json:"playerId"`
}

type DestroyableDestroyData struct {
	DestroyableID string             `json:"destroyableId"`
	Contributions []GoalContribution `json:"contributions"`
}

type CoreLeakData struct {
	CoreID        string             `json:"coreId"`
	Contributions []GoalContribution `json:"contributions"`
}

type ControlPointCaptureData struct {
	PointID   string   `json:"pointId"`
	PlayerIDs []string `json:"playerIds"`
	PartyName string   `json:"partyName"`
}

// FlagEventData covers capture, pickup and defend; HeldTime is only
// meaningful for captures.
type FlagEventData struct {
	FlagID   string       `json:"flagId"`
	Player   SimplePlayer `json:"player"`
	HeldTime int64        `json:"heldTime"`
}

type FlagDropData struct {
	FlagID   string       `json:"flagId"`
	Player   SimplePlayer `json:"player"`
	HeldTime int64        `json:"heldTime"`
}

type WoolEventData struct {
	WoolID   string       `json:"woolId"`
	Player   SimplePlayer `json:"player"`
	HeldTime int64        `json:"heldTime"`
}

type WoolDropData struct {
	WoolID   string       `json:"woolId"`
	Player   SimplePlayer `json:"player"`
	HeldTime int64        `json:"heldTime"`
}

// Outbound payloads.

type MessageData struct {
	Message   string   `json:"message"`
	Sound     *string  `json:"sound"`
	PlayerIDs []string `json:"playerIds"`
}

type PlayerXPGainData struct {
	PlayerID string `json:"playerId"`
	Gain     int    `json:"gain"`
	Reason   string `json:"reason"`
	Notify   bool   `json:"notify"`
}

type DisconnectPlayerData struct {
	PlayerID string `json:"playerId"`
	Reason   string `json:"reason"`
}

type ForceMatchEndData struct{}
