package services

import (
	"context"
	"errors"
	"testing"

	"fightdeck/models"

	"go.mongodb.org/mongo-driver/bson"
)

func newFighterParams(id, name string) NewFighterParams {
	return NewFighterParams{
		ID:         id,
		Email:      id + "@example.com",
		Name:       name,
		Age:        27,
		Location:   "Denver, CO",
		Discipline: models.DisciplineMuayThai,
		Rank:       "Amateur",
	}
}

func TestCreateFighterInitialShape(t *testing.T) {
	store := newMemStore()
	profiles := NewProfileService(store)

	fighter, err := profiles.Create(context.Background(), newFighterParams("u1", "Alice"), "hash")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if fighter.Rating != models.InitialRating {
		t.Errorf("Expected initial rating %d, got %d", models.InitialRating, fighter.Rating)
	}
	if fighter.Wins != 0 || fighter.Losses != 0 || fighter.Draws != 0 {
		t.Errorf("Expected zeroed counters, got wins=%d losses=%d draws=%d",
			fighter.Wins, fighter.Losses, fighter.Draws)
	}
	if fighter.Likes == nil || fighter.Dislikes == nil || fighter.Chats == nil {
		t.Error("Expected empty decision and chat sets, got nil")
	}
	if len(fighter.Likes)+len(fighter.Dislikes)+len(fighter.Chats) != 0 {
		t.Error("Expected decision and chat sets to start empty")
	}
	if fighter.Photo != DefaultPhoto {
		t.Errorf("Expected default photo, got %q", fighter.Photo)
	}

	stored, err := profiles.ByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if stored.Name != "Alice" || stored.Discipline != models.DisciplineMuayThai {
		t.Errorf("Stored fighter does not match input: %+v", stored)
	}
}

func TestCreateFighterDuplicateID(t *testing.T) {
	store := newMemStore()
	profiles := NewProfileService(store)
	ctx := context.Background()

	if _, err := profiles.Create(ctx, newFighterParams("u1", "Alice"), "hash"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := profiles.Create(ctx, newFighterParams("u1", "Imposter"), "hash")
	if !errors.Is(err, models.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateFighterInvalidDiscipline(t *testing.T) {
	store := newMemStore()
	profiles := NewProfileService(store)

	params := newFighterParams("u1", "Alice")
	params.Discipline = "Thumb War"
	_, err := profiles.Create(context.Background(), params, "hash")
	if !errors.Is(err, models.ErrPreconditionFailed) {
		t.Errorf("Expected precondition failure, got %v", err)
	}
}

func TestUpdateFighterRejectsGuardedFields(t *testing.T) {
	store := newMemStore()
	profiles := NewProfileService(store)
	ctx := context.Background()

	if _, err := profiles.Create(ctx, newFighterParams("u1", "Alice"), "hash"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, field := range []string{"wins", "rating", "likes", "achievements", "passwordHash"} {
		err := profiles.Update(ctx, "u1", bson.M{field: 999})
		if !errors.Is(err, models.ErrPreconditionFailed) {
			t.Errorf("Expected %q to be rejected, got %v", field, err)
		}
	}

	if err := profiles.Update(ctx, "u1", bson.M{"rank": "Pro", "location": "Miami, FL"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	fighter, err := profiles.ByID(ctx, "u1")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if fighter.Rank != "Pro" || fighter.Location != "Miami, FL" {
		t.Errorf("Expected edits applied, got rank=%q location=%q", fighter.Rank, fighter.Location)
	}
	if fighter.Rating != models.InitialRating {
		t.Errorf("Expected rating untouched, got %d", fighter.Rating)
	}
}

func TestUpdateFighterInvalidDiscipline(t *testing.T) {
	store := newMemStore()
	profiles := NewProfileService(store)
	ctx := context.Background()

	if _, err := profiles.Create(ctx, newFighterParams("u1", "Alice"), "hash"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err := profiles.Update(ctx, "u1", bson.M{"discipline": "Pillow Fighting"})
	if !errors.Is(err, models.ErrPreconditionFailed) {
		t.Errorf("Expected precondition failure, got %v", err)
	}
}

func TestRekeyFighter(t *testing.T) {
	store := newMemStore()
	profiles := NewProfileService(store)
	ctx := context.Background()

	if _, err := profiles.Create(ctx, newFighterParams("old-id", "Alice"), "hash"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := profiles.Rekey(ctx, "old-id", "new-id"); err != nil {
		t.Fatalf("Rekey failed: %v", err)
	}
	if _, err := profiles.ByID(ctx, "old-id"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected old id gone, got %v", err)
	}
	fighter, err := profiles.ByID(ctx, "new-id")
	if err != nil {
		t.Fatalf("ByID new-id failed: %v", err)
	}
	if fighter.Name != "Alice" {
		t.Errorf("Expected document carried over, got %+v", fighter)
	}

	// Rekeying onto a taken id fails.
	if _, err := profiles.Create(ctx, newFighterParams("taken", "Bob"), "hash"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := profiles.Rekey(ctx, "new-id", "taken"); !errors.Is(err, models.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
	if err := profiles.Rekey(ctx, "same", "same"); !errors.Is(err, models.ErrPreconditionFailed) {
		t.Errorf("Expected precondition failure for identical ids, got %v", err)
	}
}

func TestByEmail(t *testing.T) {
	store := newMemStore()
	profiles := NewProfileService(store)
	ctx := context.Background()

	if _, err := profiles.Create(ctx, newFighterParams("u1", "Alice"), "hash"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	fighter, err := profiles.ByEmail(ctx, "u1@example.com")
	if err != nil {
		t.Fatalf("ByEmail failed: %v", err)
	}
	if fighter.ID != "u1" {
		t.Errorf("Expected u1, got %s", fighter.ID)
	}
	if _, err := profiles.ByEmail(ctx, "nobody@example.com"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLeaderboardOrdersByRating(t *testing.T) {
	store := newMemStore()
	profiles := NewProfileService(store)
	ctx := context.Background()

	ratings := map[string]int{"low": 900, "mid": 1000, "high": 1400}
	for id, rating := range ratings {
		fighter := testFighter(id, id)
		fighter.Rating = rating
		seedFighters(store, fighter)
	}

	board, err := profiles.Leaderboard(ctx, 2)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("Expected limit of 2, got %d", len(board))
	}
	if board[0].ID != "high" || board[1].ID != "mid" {
		t.Errorf("Expected [high mid], got %v", idsOf(board))
	}
}
