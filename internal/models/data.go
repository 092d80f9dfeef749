package models

// Broadcast is a configured announcement servers cycle through.
type Broadcast struct {
	Name       string  `json:"name" yaml:"name"`
	Message    string  `json:"message" yaml:"message"`
	Permission *string `json:"permission" yaml:"permission"`
	Newline    bool    `json:"newline" yaml:"newline"`
}

// JoinSound is a purchasable perk played when its owner joins.
type JoinSound struct {
	ID          string   `json:"_id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description []string `json:"description" yaml:"description"`
	Sound       string   `json:"sound" yaml:"sound"`
	Permission  string   `json:"permission" yaml:"permission"`
	GUIIcon     string   `json:"guiIcon" yaml:"guiIcon"`
	GUISlot     int      `json:"guiSlot" yaml:"guiSlot"`
	Volume      float64  `json:"volume" yaml:"volume"`
	Pitch       float64  `json:"pitch" yaml:"pitch"`
}

// LevelColor maps an XP level threshold to a chat color.
type LevelColor struct {
	Level int    `json:"level" yaml:"level"`
	Color string `json:"color" yaml:"color"`
}
