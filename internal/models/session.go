package models

import "time"

type Session struct {
	ID        string       `json:"_id" bson:"_id"`
	IP        string       `json:"ip" bson:"ip"`
	Player    SimplePlayer `json:"player" bson:"player"`
	ServerID  string       `json:"serverId" bson:"serverId"`
	CreatedAt int64        `json:"createdAt" bson:"createdAt"`
	EndedAt   *int64       `json:"endedAt" bson:"endedAt"`
}

func (s *Session) IsActive() bool {
	return s.EndedAt == nil
}

// Length is the session duration in milliseconds, up to now if still open.
func (s *Session) Length() int64 {
	end := time.Now().UnixMilli()
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	return end - s.CreatedAt
}
