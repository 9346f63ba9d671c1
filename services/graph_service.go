package services

import (
	"context"
	"fmt"

	"fightdeck/db"
	"fightdeck/models"
)

// DecisionKind is the kind of swipe decision a viewer records about a target.
type DecisionKind string

const (
	DecisionLike    DecisionKind = "like"
	DecisionDislike DecisionKind = "dislike"
)

func (k DecisionKind) field() string {
	if k == DecisionDislike {
		return "dislikes"
	}
	return "likes"
}

// GraphService records and reads like/dislike decisions. Decisions are
// append-only: once recorded they are never removed, and recording the same
// decision twice leaves the set unchanged.
type GraphService struct {
	store db.Store
}

func NewGraphService(store db.Store) *GraphService {
	return &GraphService{store: store}
}

// RecordDecision appends targetID to the viewer's like or dislike set in one
// atomic array-union write. Idempotent.
func (s *GraphService) RecordDecision(ctx context.Context, viewerID, targetID string, kind DecisionKind) error {
	if viewerID == "" || targetID == "" {
		return fmt.Errorf("record decision: viewer and target ids are required: %w", models.ErrPreconditionFailed)
	}
	if kind != DecisionLike && kind != DecisionDislike {
		return fmt.Errorf("record decision: unknown kind %q: %w", kind, models.ErrPreconditionFailed)
	}

	result, err := s.store.AppendUnique(ctx, db.UsersCollection, viewerID, kind.field(), targetID)
	if err != nil {
		return fmt.Errorf("record %s by %s: %w", kind, viewerID, err)
	}
	if result == db.MutationNotFound {
		return fmt.Errorf("record %s by %s: %w", kind, viewerID, models.ErrNotFound)
	}
	return nil
}

// Decisions returns the viewer's current like or dislike set. A missing field
// is an empty set, not an error; a missing user is ErrNotFound.
func (s *GraphService) Decisions(ctx context.Context, userID string, kind DecisionKind) ([]string, error) {
	var fighter models.Fighter
	if err := s.store.Get(ctx, db.UsersCollection, userID, &fighter); err != nil {
		return nil, fmt.Errorf("decisions of %s: %w", userID, err)
	}

	var set []string
	if kind == DecisionDislike {
		set = fighter.Dislikes
	} else {
		set = fighter.Likes
	}
	if set == nil {
		set = []string{}
	}
	return set, nil
}

// HasLiked reports whether userID has already recorded a like for targetID.
func (s *GraphService) HasLiked(ctx context.Context, userID, targetID string) (bool, error) {
	likes, err := s.Decisions(ctx, userID, DecisionLike)
	if err != nil {
		return false, err
	}
	for _, id := range likes {
		if id == targetID {
			return true, nil
		}
	}
	return false, nil
}
