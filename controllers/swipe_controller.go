package controllers

import (
	"net/http"

	"fightdeck/models"
	"fightdeck/services"

	"github.com/gin-gonic/gin"
)

// SwipeController exposes the feed and the like/dislike decisions.
type SwipeController struct {
	feed  *services.FeedService
	match *services.MatchService
	graph *services.GraphService
}

func NewSwipeController(feed *services.FeedService, match *services.MatchService, graph *services.GraphService) *SwipeController {
	return &SwipeController{feed: feed, match: match, graph: graph}
}

// Feed returns the swipe deck for the current user, optionally restricted to
// one discipline with ?discipline=.
func (sc *SwipeController) Feed(c *gin.Context) {
	viewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	discipline := models.Discipline(c.Query("discipline"))
	fighters, err := sc.feed.Feed(c.Request.Context(), viewerID, discipline)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fighters": fighters, "total": len(fighters)})
}

// Like records a like and reports whether it completed a match.
func (sc *SwipeController) Like(c *gin.Context) {
	viewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	outcome, err := sc.match.Like(c.Request.Context(), viewerID, c.Param("targetId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// Dislike records a dislike.
func (sc *SwipeController) Dislike(c *gin.Context) {
	viewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := sc.match.Dislike(c.Request.Context(), viewerID, c.Param("targetId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dislike recorded"})
}

// Decisions returns the current user's like or dislike set (?kind=like|dislike).
func (sc *SwipeController) Decisions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	kind := services.DecisionKind(c.DefaultQuery("kind", string(services.DecisionLike)))
	if kind != services.DecisionLike && kind != services.DecisionDislike {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be like or dislike"})
		return
	}

	decisions, err := sc.graph.Decisions(c.Request.Context(), userID, kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "decisions": decisions})
}
