package models

import "time"

// Event is pushed to connected clients when something they should render
// happens outside their own request (a new match, an achievement unlock).
type Event struct {
	Type         string    `json:"type"` // "match_created", "achievement_unlocked", "result_recorded"
	UserIDs      []string  `json:"userIds"`
	ChatID       string    `json:"chatId,omitempty"`
	Achievements []string  `json:"achievements,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
