package models

type Rank struct {
	ID          string   `json:"_id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	NameLower   string   `json:"nameLower" bson:"nameLower"`
	DisplayName *string  `json:"displayName" bson:"displayName"`
	Prefix      *string  `json:"prefix" bson:"prefix"`
	Priority    int      `json:"priority" bson:"priority"`
	Permissions []string `json:"permissions" bson:"permissions"`
	Staff       bool     `json:"staff" bson:"staff"`
	ApplyOnJoin bool     `json:"applyOnJoin" bson:"applyOnJoin"`
	CreatedAt   int64    `json:"createdAt" bson:"createdAt"`
}

type Tag struct {
	ID        string `json:"_id" bson:"_id"`
	Name      string `json:"name" bson:"name"`
	NameLower string `json:"nameLower" bson:"nameLower"`
	Display   string `json:"display" bson:"display"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}
