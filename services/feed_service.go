package services

import (
	"context"
	"errors"
	"fmt"

	"fightdeck/db"
	"fightdeck/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

// FeedService builds the swipe deck for a viewer.
type FeedService struct {
	store db.Store
}

func NewFeedService(store db.Store) *FeedService {
	return &FeedService{store: store}
}

// FilterEligible returns the candidates the viewer may still swipe on:
// not the viewer themselves, not already decided about, and not a user who
// has disliked the viewer. The dislike check needs a fresh per-candidate
// read, so those lookups run concurrently. A nil or empty pool yields an
// empty result; a missing viewer id is a caller bug and fails immediately.
func (s *FeedService) FilterEligible(ctx context.Context, viewerID string, pool []models.Fighter) ([]models.Fighter, error) {
	if viewerID == "" {
		return nil, fmt.Errorf("filter candidates: viewer id is required: %w", models.ErrPreconditionFailed)
	}
	if len(pool) == 0 {
		return []models.Fighter{}, nil
	}

	var viewer models.Fighter
	if err := s.store.Get(ctx, db.UsersCollection, viewerID, &viewer); err != nil {
		return nil, fmt.Errorf("filter candidates for %s: %w", viewerID, err)
	}

	decided := make(map[string]bool, len(viewer.Likes)+len(viewer.Dislikes))
	for _, id := range viewer.Likes {
		decided[id] = true
	}
	for _, id := range viewer.Dislikes {
		decided[id] = true
	}

	keep := make([]bool, len(pool))
	group, groupCtx := errgroup.WithContext(ctx)
	for i := range pool {
		candidate := pool[i]
		if candidate.ID == viewerID || decided[candidate.ID] {
			continue
		}

		index := i
		group.Go(func() error {
			var current models.Fighter
			err := s.store.Get(groupCtx, db.UsersCollection, candidate.ID, &current)
			if errors.Is(err, models.ErrNotFound) {
				// Candidate vanished since the pool was fetched; drop it.
				return nil
			}
			if err != nil {
				return err
			}
			for _, id := range current.Dislikes {
				if id == viewerID {
					return nil
				}
			}
			keep[index] = true
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("filter candidates for %s: %w", viewerID, err)
	}

	eligible := make([]models.Fighter, 0, len(pool))
	for i, fighter := range pool {
		if keep[i] {
			eligible = append(eligible, fighter)
		}
	}
	return eligible, nil
}

// Feed fetches the candidate pool, optionally restricted to one discipline,
// and filters it for the viewer. Stale reads are acceptable here; only
// mutations need the atomic path.
func (s *FeedService) Feed(ctx context.Context, viewerID string, discipline models.Discipline) ([]models.Fighter, error) {
	filter := bson.M{}
	if discipline != "" {
		if !models.ValidDiscipline(discipline) {
			return nil, fmt.Errorf("feed: unknown discipline %q: %w", discipline, models.ErrPreconditionFailed)
		}
		filter["discipline"] = discipline
	}

	var pool []models.Fighter
	if err := s.store.Find(ctx, db.UsersCollection, filter, nil, 0, &pool); err != nil {
		return nil, fmt.Errorf("feed: fetch candidates: %w", err)
	}
	return s.FilterEligible(ctx, viewerID, pool)
}
