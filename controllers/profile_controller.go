package controllers

import (
	"net/http"

	"fightdeck/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// ProfileController exposes the current user's profile.
type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// GetProfile returns the current user's fighter document.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fighter, err := pc.profiles.ByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fighter)
}

type updateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Age        *int    `json:"age,omitempty"`
	Location   *string `json:"location,omitempty"`
	Discipline *string `json:"discipline,omitempty"`
	Rank       *string `json:"rank,omitempty"`
	Photo      *string `json:"photo,omitempty"`
}

// UpdateProfile merges the editable fields into the current user's document.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Age != nil {
		fields["age"] = *req.Age
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Discipline != nil {
		fields["discipline"] = *req.Discipline
	}
	if req.Rank != nil {
		fields["rank"] = *req.Rank
	}
	if req.Photo != nil {
		fields["photo"] = *req.Photo
	}

	if err := pc.profiles.Update(c.Request.Context(), userID, fields); err != nil {
		respondError(c, err)
		return
	}

	fighter, err := pc.profiles.ByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fighter)
}

type rekeyRequest struct {
	NewID string `json:"newId" binding:"required"`
}

// Rekey moves the current user's document to a new id in one transaction.
// Fails with a conflict if the target id is already taken.
func (pc *ProfileController) Rekey(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req rekeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := pc.profiles.Rekey(c.Request.Context(), userID, req.NewID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile rekeyed", "id": req.NewID})
}

// GetFighter returns another user's public profile.
func (pc *ProfileController) GetFighter(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	fighter, err := pc.profiles.ByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	fighter.PasswordHash = ""
	fighter.Email = ""
	c.JSON(http.StatusOK, fighter)
}
