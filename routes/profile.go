package routes

import (
	"fightdeck/controllers"

	"github.com/gin-gonic/gin"
)

// SetupProfileRoutes registers profile and leaderboard endpoints.
func SetupProfileRoutes(rg *gin.RouterGroup, profile *controllers.ProfileController, leaderboard *controllers.LeaderboardController) {
	rg.GET("/user/fetchprofile", profile.GetProfile)
	rg.PUT("/user/updateprofile", profile.UpdateProfile)
	rg.POST("/user/rekey", profile.Rekey)
	rg.GET("/fighters/:userId", profile.GetFighter)
	rg.GET("/leaderboard", leaderboard.Get)
}
