package services

import (
	"context"
	"fmt"
	"time"

	"fightdeck/db"
	"fightdeck/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultPhoto is used when onboarding does not supply a photo reference.
const DefaultPhoto = "https://images.pexels.com/photos/4754139/pexels-photo-4754139.jpeg"

// ProfileService owns fighter document lifecycle outside the swipe/match
// path: onboarding, profile edits, rekeying and leaderboard reads.
type ProfileService struct {
	store db.Store
}

func NewProfileService(store db.Store) *ProfileService {
	return &ProfileService{store: store}
}

// NewFighterParams carries the onboarding fields.
type NewFighterParams struct {
	ID          string
	Email       string
	Name        string
	Age         int
	Location    string
	Coordinates *models.GeoPoint
	Discipline  models.Discipline
	Rank        string
	Photo       string
}

// Create inserts a new fighter document with the standard initial shape:
// rating 1000, zeroed counters, empty decision and chat sets.
func (s *ProfileService) Create(ctx context.Context, params NewFighterParams, passwordHash string) (*models.Fighter, error) {
	if params.ID == "" || params.Name == "" {
		return nil, fmt.Errorf("create fighter: id and name are required: %w", models.ErrPreconditionFailed)
	}
	if !models.ValidDiscipline(params.Discipline) {
		return nil, fmt.Errorf("create fighter: unknown discipline %q: %w", params.Discipline, models.ErrPreconditionFailed)
	}

	photo := params.Photo
	if photo == "" {
		photo = DefaultPhoto
	}

	fighter := models.Fighter{
		ID:           params.ID,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Name:         params.Name,
		Age:          params.Age,
		Location:     params.Location,
		Coordinates:  params.Coordinates,
		Discipline:   params.Discipline,
		Rank:         params.Rank,
		Photo:        photo,
		Rating:       models.InitialRating,
		Likes:        []string{},
		Dislikes:     []string{},
		Chats:        []string{},
		CreatedAt:    time.Now(),
	}
	if err := s.store.Insert(ctx, db.UsersCollection, fighter.ID, fighter); err != nil {
		return nil, fmt.Errorf("create fighter %s: %w", fighter.ID, err)
	}
	return &fighter, nil
}

// ByID fetches a fighter document.
func (s *ProfileService) ByID(ctx context.Context, userID string) (*models.Fighter, error) {
	var fighter models.Fighter
	if err := s.store.Get(ctx, db.UsersCollection, userID, &fighter); err != nil {
		return nil, fmt.Errorf("fighter %s: %w", userID, err)
	}
	return &fighter, nil
}

// ByEmail looks a fighter up by login email.
func (s *ProfileService) ByEmail(ctx context.Context, email string) (*models.Fighter, error) {
	var fighters []models.Fighter
	if err := s.store.Find(ctx, db.UsersCollection, bson.M{"email": email}, nil, 1, &fighters); err != nil {
		return nil, fmt.Errorf("fighter by email: %w", err)
	}
	if len(fighters) == 0 {
		return nil, fmt.Errorf("fighter by email: %w", models.ErrNotFound)
	}
	return &fighters[0], nil
}

// Update merges the given fields into the fighter document. Stat counters and
// decision sets are owned by the match and reconciliation paths and are not
// editable here.
func (s *ProfileService) Update(ctx context.Context, userID string, fields bson.M) error {
	if len(fields) == 0 {
		return fmt.Errorf("update fighter %s: no fields to update: %w", userID, models.ErrPreconditionFailed)
	}
	for _, guarded := range []string{"wins", "losses", "draws", "rating", "likes", "dislikes", "chats", "achievements", "recentMatches", "passwordHash", "_id"} {
		if _, ok := fields[guarded]; ok {
			return fmt.Errorf("update fighter %s: field %q is not editable: %w", userID, guarded, models.ErrPreconditionFailed)
		}
	}
	if raw, ok := fields["discipline"]; ok {
		if d, ok := raw.(string); !ok || !models.ValidDiscipline(models.Discipline(d)) {
			return fmt.Errorf("update fighter %s: invalid discipline: %w", userID, models.ErrPreconditionFailed)
		}
	}

	result, err := s.store.Merge(ctx, db.UsersCollection, userID, fields)
	if err != nil {
		return fmt.Errorf("update fighter %s: %w", userID, err)
	}
	if result == db.MutationNotFound {
		return fmt.Errorf("update fighter %s: %w", userID, models.ErrNotFound)
	}
	return nil
}

// Rekey changes a fighter's document id in one transaction.
func (s *ProfileService) Rekey(ctx context.Context, oldID, newID string) error {
	if oldID == "" || newID == "" || oldID == newID {
		return fmt.Errorf("rekey: invalid ids: %w", models.ErrPreconditionFailed)
	}
	if err := s.store.Rekey(ctx, db.UsersCollection, oldID, newID); err != nil {
		return fmt.Errorf("rekey %s -> %s: %w", oldID, newID, err)
	}
	return nil
}

// Leaderboard returns fighters ordered by rating, best first.
func (s *ProfileService) Leaderboard(ctx context.Context, limit int64) ([]models.Fighter, error) {
	var fighters []models.Fighter
	sort := bson.D{{Key: "rating", Value: -1}}
	if err := s.store.Find(ctx, db.UsersCollection, bson.M{}, sort, limit, &fighters); err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	return fighters, nil
}
