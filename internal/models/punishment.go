package models

import "time"

type PunishmentKind string

const (
	PunishmentKindWarn  PunishmentKind = "WARN"
	PunishmentKindKick  PunishmentKind = "KICK"
	PunishmentKindMute  PunishmentKind = "MUTE"
	PunishmentKindBan   PunishmentKind = "BAN"
	PunishmentKindIPBan PunishmentKind = "IP_BAN"
)

// PunishmentAction is what was done and for how long. Length is in
// milliseconds; -1 means permanent, 0 means instant (warns, kicks).
type PunishmentAction struct {
	Kind   PunishmentKind `json:"kind" bson:"kind"`
	Length int64          `json:"length" bson:"length"`
}

func (a PunishmentAction) IsBan() bool {
	return a.Kind == PunishmentKindBan || a.Kind == PunishmentKindIPBan
}

func (a PunishmentAction) IsPermanent() bool {
	return a.Length == -1
}

// PunishmentReason is denormalized from the punishment type at issue time
// so old punishments keep their wording when types are edited.
type PunishmentReason struct {
	Name    string `json:"name" bson:"name"`
	Message string `json:"message" bson:"message"`
	Short   string `json:"short" bson:"short"`
}

type PunishmentReversion struct {
	RevertedAt int64        `json:"revertedAt" bson:"revertedAt"`
	Reverter   SimplePlayer `json:"reverter" bson:"reverter"`
	Reason     string       `json:"reason" bson:"reason"`
}

type Punishment struct {
	ID        string               `json:"_id" bson:"_id"`
	Reason    PunishmentReason     `json:"reason" bson:"reason"`
	IssuedAt  int64                `json:"issuedAt" bson:"issuedAt"`
	Silent    bool                 `json:"silent" bson:"silent"`
	Offence   int                  `json:"offence" bson:"offence"`
	Action    PunishmentAction     `json:"action" bson:"action"`
	Note      *string              `json:"note" bson:"note"`
	Punisher  *SimplePlayer        `json:"punisher" bson:"punisher"`
	Target    SimplePlayer         `json:"target" bson:"target"`
	TargetIPs []string             `json:"targetIps" bson:"targetIps"`
	Reversion *PunishmentReversion `json:"reversion" bson:"reversion"`
	ServerID  *string              `json:"serverId" bson:"serverId"`
}

func (p *Punishment) ExpiresAt() int64 {
	if p.Action.IsPermanent() {
		return -1
	}
	return p.IssuedAt + p.Action.Length
}

// IsActive reports whether the punishment still binds: not reverted, and
// either permanent or inside its window.
func (p *Punishment) IsActive() bool {
	if p.Reversion != nil {
		return false
	}
	if p.Action.IsPermanent() {
		return true
	}
	return time.Now().UnixMilli() < p.IssuedAt+p.Action.Length
}

func (p *Punishment) IsBan() bool {
	return p.Action.IsBan()
}

// PunishmentType is a configured punishment template staff pick from.
type PunishmentType struct {
	Name               string             `json:"name" yaml:"name"`
	Short              string             `json:"short" yaml:"short"`
	Message            string             `json:"message" yaml:"message"`
	Actions            []PunishmentAction `json:"actions" yaml:"actions"`
	Material           string             `json:"material" yaml:"material"`
	Position           int                `json:"position" yaml:"position"`
	Tip                *string            `json:"tip" yaml:"tip"`
	RequiredPermission string             `json:"requiredPermission" yaml:"requiredPermission"`
}

type StaffNote struct {
	ID        int          `json:"id" bson:"id"`
	Author    SimplePlayer `json:"author" bson:"author"`
	Content   string       `json:"content" bson:"content"`
	CreatedAt int64        `json:"createdAt" bson:"createdAt"`
}
