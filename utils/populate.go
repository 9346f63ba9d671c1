package utils

import (
	"context"
	"errors"
	"log"

	"fightdeck/db"
	"fightdeck/models"
	"fightdeck/services"
)

// PopulateTestFighters inserts sample fighters into the database. Existing
// ids are left untouched, so reseeding a dev database is harmless.
func PopulateTestFighters(ctx context.Context, store db.Store) {
	fighters := []services.NewFighterParams{
		{
			ID:         "fighter-alex",
			Email:      "alex@example.com",
			Name:       "Alex Kim",
			Age:        27,
			Location:   "Seattle, WA",
			Discipline: models.DisciplineMMA,
			Rank:       "Intermediate, 4 years",
			Photo:      "https://images.pexels.com/photos/4761671/pexels-photo-4761671.jpeg",
		},
		{
			ID:         "fighter-sophia",
			Email:      "sophia@example.com",
			Name:       "Sophia Lee",
			Age:        24,
			Location:   "Portland, OR",
			Discipline: models.DisciplineBJJ,
			Rank:       "Blue Belt",
			Photo:      "https://images.pexels.com/photos/3621183/pexels-photo-3621183.jpeg",
		},
		{
			ID:         "fighter-marcus",
			Email:      "marcus@example.com",
			Name:       "Marcus Williams",
			Age:        31,
			Location:   "Brooklyn, NY",
			Discipline: models.DisciplineBoxing,
			Rank:       "Amateur, 6 years",
			Photo:      "https://images.pexels.com/photos/4890733/pexels-photo-4890733.jpeg",
		},
	}

	profiles := services.NewProfileService(store)
	for _, params := range fighters {
		_, err := profiles.Create(ctx, params, "")
		if err != nil && !errors.Is(err, models.ErrAlreadyExists) {
			log.Printf("seed fighter %s: %v", params.ID, err)
		}
	}
}
