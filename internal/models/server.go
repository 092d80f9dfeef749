package models

// XPMultiplier scales XP gains server-wide, optionally attributed to the
// player who activated it.
type XPMultiplier struct {
	Value     float64       `json:"value" bson:"value"`
	Player    *SimplePlayer `json:"player" bson:"player"`
	UpdatedAt int64         `json:"updatedAt" bson:"updatedAt"`
}

// ServerEvents is transient per-server state kept in Redis.
type ServerEvents struct {
	XPMultiplier *XPMultiplier `json:"xpMultiplier"`
}

// ServerStatus is the aggregate returned by the server status endpoint.
type ServerStatus struct {
	LastAliveTime int64  `json:"lastAliveTime"`
	CurrentMatch  *Match `json:"currentMatch"`
	StatsTracking bool   `json:"statsTracking"`
}
