package models

type Gamemode string

const (
	GamemodeAttackDefend       Gamemode = "ATTACK_DEFEND"
	GamemodeArcade             Gamemode = "ARCADE"
	GamemodeBedwars            Gamemode = "BEDWARS"
	GamemodeBridge             Gamemode = "BRIDGE"
	GamemodeCaptureTheFlag     Gamemode = "CAPTURE_THE_FLAG"
	GamemodeControlThePoint    Gamemode = "CONTROL_THE_POINT"
	GamemodeCaptureTheWool     Gamemode = "CAPTURE_THE_WOOL"
	GamemodeDestroyTheCore     Gamemode = "DESTROY_THE_CORE"
	GamemodeDestroyTheMonument Gamemode = "DESTROY_THE_MONUMENT"
	GamemodeFreeForAll         Gamemode = "FREE_FOR_ALL"
	GamemodeInfection          Gamemode = "INFECTION"
	GamemodeKingOfTheHill      Gamemode = "KING_OF_THE_HILL"
	GamemodeKingOfTheFlag      Gamemode = "KING_OF_THE_FLAG"
	GamemodeMixed              Gamemode = "MIXED"
	GamemodeRageFFA            Gamemode = "RAGE_FREE_FOR_ALL"
	GamemodeRage               Gamemode = "RAGE"
	GamemodeScorebox           Gamemode = "SCOREBOX"
	GamemodeSkywars            Gamemode = "SKYWARS"
	GamemodeSurvivalGames      Gamemode = "SURVIVAL_GAMES"
	GamemodeDeathmatch         Gamemode = "DEATHMATCH"
)

type LevelContributor struct {
	UUID         string  `json:"uuid" bson:"uuid"`
	Contribution *string `json:"contribution" bson:"contribution"`
}

type Level struct {
	ID           string             `json:"_id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	NameLower    string             `json:"nameLower" bson:"nameLower"`
	Version      string             `json:"version" bson:"version"`
	Gamemodes    []Gamemode         `json:"gamemodes" bson:"gamemodes"`
	LoadedAt     int64              `json:"loadedAt" bson:"loadedAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
	Authors      []LevelContributor `json:"authors" bson:"authors"`
	Contributors []LevelContributor `json:"contributors" bson:"contributors"`
	Goals        *GoalCollection    `json:"goals" bson:"goals"`
	LastMatchID  *string            `json:"lastMatchId" bson:"lastMatchId"`
	Records      LevelRecords       `json:"records" bson:"records"`
}

// LevelRecords are the per-map bests, beaten during live matches.
type LevelRecords struct {
	HighestKillstreak     *CountRecord      `json:"highestKillstreak,omitempty" bson:"highestKillstreak,omitempty"`
	LongestProjectileKill *ProjectileRecord `json:"longestProjectileKill,omitempty" bson:"longestProjectileKill,omitempty"`
	FastestWoolCapture    *DurationRecord   `json:"fastestWoolCapture,omitempty" bson:"fastestWoolCapture,omitempty"`
	FastestFlagCapture    *DurationRecord   `json:"fastestFlagCapture,omitempty" bson:"fastestFlagCapture,omitempty"`
	FastestFirstBlood     *FirstBloodRecord `json:"fastestFirstBlood,omitempty" bson:"fastestFirstBlood,omitempty"`
	KillsInMatch          *CountRecord      `json:"killsInMatch,omitempty" bson:"killsInMatch,omitempty"`
	DeathsInMatch         *CountRecord      `json:"deathsInMatch,omitempty" bson:"deathsInMatch,omitempty"`
}

type GoalCollection struct {
	Cores         []CoreGoal         `json:"cores" bson:"cores"`
	Destroyables  []DestroyableGoal  `json:"destroyables" bson:"destroyables"`
	Flags         []FlagGoal         `json:"flags" bson:"flags"`
	Wools         []WoolGoal         `json:"wools" bson:"wools"`
	ControlPoints []ControlPointGoal `json:"controlPoints" bson:"controlPoints"`
}

type CoreGoal struct {
	ID        string  `json:"id" bson:"id"`
	Name      string  `json:"name" bson:"name"`
	OwnerName *string `json:"ownerName" bson:"ownerName"`
	Material  string  `json:"material" bson:"material"`
}

type DestroyableGoal struct {
	ID             string  `json:"id" bson:"id"`
	Name           string  `json:"name" bson:"name"`
	OwnerName      *string `json:"ownerName" bson:"ownerName"`
	Material       string  `json:"material" bson:"material"`
	BlockCount     int     `json:"blockCount" bson:"blockCount"`
	BreaksRequired int     `json:"breaksRequired" bson:"breaksRequired"`
}

type FlagGoal struct {
	ID        string  `json:"id" bson:"id"`
	Name      string  `json:"name" bson:"name"`
	OwnerName *string `json:"ownerName" bson:"ownerName"`
	Color     string  `json:"color" bson:"color"`
}

type WoolGoal struct {
	ID        string  `json:"id" bson:"id"`
	Name      string  `json:"name" bson:"name"`
	OwnerName *string `json:"ownerName" bson:"ownerName"`
	Color     string  `json:"color" bson:"color"`
}

type ControlPointGoal struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}
