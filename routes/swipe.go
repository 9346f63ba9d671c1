package routes

import (
	"fightdeck/controllers"

	"github.com/gin-gonic/gin"
)

// SetupSwipeRoutes registers the feed and decision endpoints.
func SetupSwipeRoutes(rg *gin.RouterGroup, swipe *controllers.SwipeController) {
	rg.GET("/feed", swipe.Feed)
	rg.POST("/swipe/like/:targetId", swipe.Like)
	rg.POST("/swipe/dislike/:targetId", swipe.Dislike)
	rg.GET("/user/decisions", swipe.Decisions)
}
