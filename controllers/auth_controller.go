package controllers

import (
	"errors"
	"log"
	"net/http"

	"fightdeck/models"
	"fightdeck/services"
	"fightdeck/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthController handles onboarding and login. Authentication is deliberately
// thin: the core only needs a verified user id to pass into the services.
type AuthController struct {
	profiles *services.ProfileService
}

func NewAuthController(profiles *services.ProfileService) *AuthController {
	return &AuthController{profiles: profiles}
}

type signUpRequest struct {
	Email       string           `json:"email" binding:"required,email"`
	Password    string           `json:"password" binding:"required,min=8"`
	Name        string           `json:"name" binding:"required"`
	Age         int              `json:"age" binding:"required,gte=18"`
	Location    string           `json:"location" binding:"required"`
	Coordinates *models.GeoPoint `json:"coordinates,omitempty"`
	Discipline  string           `json:"discipline" binding:"required"`
	Rank        string           `json:"rank" binding:"required"`
	Photo       string           `json:"photo,omitempty"`
}

// SignUp creates the fighter document with the standard initial stats and
// returns a session token.
func (ac *AuthController) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if _, err := ac.profiles.ByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		respondError(c, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	fighter, err := ac.profiles.Create(c.Request.Context(), services.NewFighterParams{
		ID:          uuid.NewString(),
		Email:       req.Email,
		Name:        req.Name,
		Age:         req.Age,
		Location:    req.Location,
		Coordinates: req.Coordinates,
		Discipline:  models.Discipline(req.Discipline),
		Rank:        req.Rank,
		Photo:       req.Photo,
	}, hash)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateJWTToken(fighter.ID, fighter.Email)
	if err != nil {
		log.Printf("Error generating token for %s: %v", fighter.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "fighter": fighter})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a session token.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	fighter, err := ac.profiles.ByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		respondError(c, err)
		return
	}

	if !utils.CheckPasswordHash(req.Password, fighter.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWTToken(fighter.ID, fighter.Email)
	if err != nil {
		log.Printf("Error generating token for %s: %v", fighter.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "fighter": fighter})
}
