package models

import "time"

// Discipline is the fixed set of fight disciplines a fighter can train.
type Discipline string

const (
	DisciplineAikido     Discipline = "Aikido"
	DisciplineBJJ        Discipline = "BJJ"
	DisciplineBoxing     Discipline = "Boxing"
	DisciplineJudo       Discipline = "Judo"
	DisciplineKarate     Discipline = "Karate"
	DisciplineKendo      Discipline = "Kendo"
	DisciplineKickboxing Discipline = "Kickboxing"
	DisciplineKungFu     Discipline = "Kung Fu"
	DisciplineKravMaga   Discipline = "Krav Maga"
	DisciplineTaekwondo  Discipline = "Taekwondo"
	DisciplineMMA        Discipline = "MMA"
	DisciplineMuayThai   Discipline = "Muay Thai"
	DisciplineWrestling  Discipline = "Wrestling"
)

var disciplines = map[Discipline]bool{
	DisciplineAikido:     true,
	DisciplineBJJ:        true,
	DisciplineBoxing:     true,
	DisciplineJudo:       true,
	DisciplineKarate:     true,
	DisciplineKendo:      true,
	DisciplineKickboxing: true,
	DisciplineKungFu:     true,
	DisciplineKravMaga:   true,
	DisciplineTaekwondo:  true,
	DisciplineMMA:        true,
	DisciplineMuayThai:   true,
	DisciplineWrestling:  true,
}

// ValidDiscipline reports whether d is one of the known disciplines.
func ValidDiscipline(d Discipline) bool {
	return disciplines[d]
}

// InitialRating is the rating every fighter starts with.
const InitialRating = 1000

// GeoPoint is an optional coordinate attached to a free-text location.
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// RecentMatch is one entry of a fighter's capped match history. The opponent
// fields are a snapshot taken at reconciliation time, not live references.
type RecentMatch struct {
	OpponentName  string    `bson:"opponentName" json:"opponentName"`
	OpponentPhoto string    `bson:"opponentPhoto" json:"opponentPhoto"`
	Date          time.Time `bson:"date" json:"date"`
	Result        string    `bson:"result" json:"result"` // "win", "loss" or "draw"
}

// AchievementUnlock records one unlocked achievement. A name appears at most
// once per fighter.
type AchievementUnlock struct {
	Name       string    `bson:"name" json:"name"`
	UnlockedAt time.Time `bson:"unlockedAt" json:"unlockedAt"`
}

// Fighter is a user profile document. The likes/dislikes/chats arrays carry
// set semantics: ordered, no duplicates, appended only through atomic
// array-union updates.
type Fighter struct {
	ID            string              `bson:"_id" json:"id"`
	Email         string              `bson:"email" json:"email"`
	PasswordHash  string              `bson:"passwordHash,omitempty" json:"-"`
	Name          string              `bson:"name" json:"name"`
	Age           int                 `bson:"age" json:"age"`
	Location      string              `bson:"location" json:"location"`
	Coordinates   *GeoPoint           `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Discipline    Discipline          `bson:"discipline" json:"discipline"`
	Rank          string              `bson:"rank" json:"rank"`
	Photo         string              `bson:"photo" json:"photo"`
	Rating        int                 `bson:"rating" json:"rating"`
	Wins          int                 `bson:"wins" json:"wins"`
	Losses        int                 `bson:"losses" json:"losses"`
	Draws         int                 `bson:"draws" json:"draws"`
	Likes         []string            `bson:"likes" json:"likes"`
	Dislikes      []string            `bson:"dislikes" json:"dislikes"`
	Chats         []string            `bson:"chats" json:"chats"`
	Achievements  []AchievementUnlock `bson:"achievements,omitempty" json:"achievements,omitempty"`
	RecentMatches []RecentMatch       `bson:"recentMatches,omitempty" json:"recentMatches,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}
