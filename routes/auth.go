package routes

import (
	"fightdeck/controllers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the public onboarding and login endpoints.
func SetupAuthRoutes(router *gin.Engine, auth *controllers.AuthController) {
	router.POST("/signup", auth.SignUp)
	router.POST("/login", auth.Login)
}
