package controllers

import (
	"log"
	"net/http"

	"fightdeck/services"

	"github.com/gin-gonic/gin"
)

// ResultController accepts reported match outcomes for a conversation.
type ResultController struct {
	results *services.ResultService
}

func NewResultController(results *services.ResultService) *ResultController {
	return &ResultController{results: results}
}

type submitResultRequest struct {
	WinnerID string `json:"winnerId" binding:"required"` // participant id or "draw"
}

// Submit reconciles a reported outcome. The cooldown gate inside the service
// is the source of truth; the UI disabling the button is only a convenience.
func (rc *ResultController) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req submitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	chatID := c.Param("chatId")
	outcomes, err := rc.results.SubmitResult(c.Request.Context(), chatID, userID, req.WinnerID)
	if err != nil {
		if len(outcomes) > 0 {
			// Some participants committed before the failure; the incident
			// is already logged, but the caller needs to know the state.
			log.Printf("partial result application for chat %s: %v", chatID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "Result applied partially; support has been notified",
				"outcomes": outcomes,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Result recorded", "outcomes": outcomes})
}

// Status reports whether the conversation can accept a new result submission.
func (rc *ResultController) Status(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	active, err := rc.results.CooldownActive(c.Request.Context(), c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cooldownActive": active})
}
