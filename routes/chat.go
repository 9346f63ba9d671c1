package routes

import (
	"fightdeck/controllers"

	"github.com/gin-gonic/gin"
)

// SetupChatRoutes registers conversation, messaging and result endpoints.
func SetupChatRoutes(rg *gin.RouterGroup, chat *controllers.ChatController, result *controllers.ResultController) {
	rg.GET("/chats", chat.List)
	rg.GET("/chats/:chatId", chat.Get)
	rg.POST("/chats/:chatId/messages", chat.Send)
	rg.POST("/chats/:chatId/read", chat.MarkRead)
	rg.POST("/chats/:chatId/result", result.Submit)
	rg.GET("/chats/:chatId/result", result.Status)
}
