package models

type DamageCause string

const (
	DamageCauseMelee      DamageCause = "MELEE"
	DamageCauseProjectile DamageCause = "PROJECTILE"
	DamageCauseExplosion  DamageCause = "EXPLOSION"
	DamageCauseFire       DamageCause = "FIRE"
	DamageCauseLava       DamageCause = "LAVA"
	DamageCausePotion     DamageCause = "POTION"
	DamageCauseFlatten    DamageCause = "FLATTEN"
	DamageCauseFall       DamageCause = "FALL"
	DamageCausePrick      DamageCause = "PRICK"
	DamageCauseDrown      DamageCause = "DROWN"
	DamageCauseStarve     DamageCause = "STARVE"
	DamageCauseSuffocate  DamageCause = "SUFFOCATE"
	DamageCauseShock      DamageCause = "SHOCK"
	DamageCauseSpleef     DamageCause = "SPLEEF"
	DamageCauseVoid       DamageCause = "VOID"
	DamageCauseUnknown    DamageCause = "UNKNOWN"
)

// Death is the durable per-kill record, written asynchronously so the
// socket loop never waits on the database.
type Death struct {
	ID        string        `json:"_id" bson:"_id"`
	Victim    SimplePlayer  `json:"victim" bson:"victim"`
	Attacker  *SimplePlayer `json:"attacker" bson:"attacker"`
	Weapon    *string       `json:"weapon" bson:"weapon"`
	Entity    *string       `json:"entity" bson:"entity"`
	Distance  *int          `json:"distance" bson:"distance"`
	Key       string        `json:"key" bson:"key"`
	Cause     DamageCause   `json:"cause" bson:"cause"`
	ServerID  string        `json:"serverId" bson:"serverId"`
	MatchID   string        `json:"matchId" bson:"matchId"`
	CreatedAt int64         `json:"createdAt" bson:"createdAt"`
}
