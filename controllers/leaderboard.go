package controllers

import (
	"net/http"
	"strconv"

	"fightdeck/services"

	"github.com/gin-gonic/gin"
)

// LeaderboardEntry is one row of the rating leaderboard.
type LeaderboardEntry struct {
	ID          string `json:"id"`
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Rating      int    `json:"rating"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
	Photo       string `json:"photo"`
	CurrentUser bool   `json:"currentUser"`
}

// LeaderboardController serves fighters ranked by rating.
type LeaderboardController struct {
	profiles *services.ProfileService
}

func NewLeaderboardController(profiles *services.ProfileService) *LeaderboardController {
	return &LeaderboardController{profiles: profiles}
}

// Get returns the top fighters by rating (default 50, max 100 via ?limit=).
func (lc *LeaderboardController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	fighters, err := lc.profiles.Leaderboard(c.Request.Context(), int64(limit))
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]LeaderboardEntry, 0, len(fighters))
	for i, fighter := range fighters {
		entries = append(entries, LeaderboardEntry{
			ID:          fighter.ID,
			Rank:        i + 1,
			Name:        fighter.Name,
			Rating:      fighter.Rating,
			Wins:        fighter.Wins,
			Losses:      fighter.Losses,
			Draws:       fighter.Draws,
			Photo:       fighter.Photo,
			CurrentUser: fighter.ID == userID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"fighters": entries, "total": len(entries)})
}
