package models

import (
	"sort"
	"time"
)

// WinnerDraw is the sentinel winner id meaning the match ended in a draw.
const WinnerDraw = "draw"

// Participant is a denormalized snapshot of a chat member taken when the
// conversation is created. Name and photo are not live-synced afterwards.
type Participant struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Photo string `bson:"photo" json:"photo"`
}

// ChatMessage is immutable once appended. The id is client-generated and
// time-based; it only needs to be unique within a single sender.
type ChatMessage struct {
	ID         string    `bson:"id" json:"id"`
	SenderID   string    `bson:"senderId" json:"senderId"`
	ReceiverID string    `bson:"receiverId" json:"receiverId"`
	Message    string    `bson:"message" json:"message"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	// Read is a legacy per-message flag, superseded by Chat.UnreadCounts.
	Read bool `bson:"read" json:"read"`
}

// MatchResult is one submitted outcome for a conversation.
type MatchResult struct {
	SubmissionID string    `bson:"submissionId" json:"submissionId"`
	WinnerID     string    `bson:"winnerId" json:"winnerId"` // participant id or WinnerDraw
	ReportedBy   string    `bson:"reportedBy" json:"reportedBy"`
	SubmittedAt  time.Time `bson:"submittedAt" json:"submittedAt"`
}

// Chat is the conversation created for a mutual match. Its document id is the
// canonical pair key of the two participants, so at most one chat can ever
// exist per unordered pair. The participant pair is immutable after creation.
type Chat struct {
	ID           string         `bson:"_id" json:"id"`
	Participants []Participant  `bson:"participants" json:"participants"`
	Messages     []ChatMessage  `bson:"messages" json:"messages"`
	UnreadCounts map[string]int `bson:"unreadCounts" json:"unreadCounts"`
	LastMessage  *ChatMessage   `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	Results      []MatchResult  `bson:"results,omitempty" json:"results,omitempty"`
	CreatedAt    time.Time      `bson:"createdAt" json:"createdAt"`
}

// PairKey returns the canonical chat id for an unordered user pair.
func PairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}

// HasParticipant reports whether userID is one of the chat's two members.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// Other returns the participant that is not userID.
func (c *Chat) Other(userID string) (Participant, bool) {
	for _, p := range c.Participants {
		if p.ID != userID {
			return p, true
		}
	}
	return Participant{}, false
}
