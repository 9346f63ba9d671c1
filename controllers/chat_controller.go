package controllers

import (
	"net/http"
	"time"

	"fightdeck/models"
	"fightdeck/services"

	"github.com/gin-gonic/gin"
)

// ChatController exposes conversations and messaging.
type ChatController struct {
	match *services.MatchService
}

func NewChatController(match *services.MatchService) *ChatController {
	return &ChatController{match: match}
}

// List returns the current user's conversations, unread first.
func (cc *ChatController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	chats, err := cc.match.ChatsFor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats, "total": len(chats)})
}

// Get returns one conversation; only its participants may read it.
func (cc *ChatController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	chat, err := cc.match.Chat(c.Request.Context(), c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !chat.HasParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this chat"})
		return
	}
	c.JSON(http.StatusOK, chat)
}

type sendMessageRequest struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message" binding:"required"`
}

// Send appends a message from the current user to the other participant.
func (cc *ChatController) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	chatID := c.Param("chatId")
	chat, err := cc.match.Chat(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}
	other, found := chat.Other(userID)
	if !chat.HasParticipant(userID) || !found {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this chat"})
		return
	}

	message := models.ChatMessage{
		ID:         req.ID,
		SenderID:   userID,
		ReceiverID: other.ID,
		Message:    req.Message,
		Timestamp:  time.Now(),
	}
	if err := cc.match.SendMessage(c.Request.Context(), chatID, message); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message sent"})
}

// MarkRead zeroes the current user's unread counter for the chat.
func (cc *ChatController) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := cc.match.MarkRead(c.Request.Context(), c.Param("chatId"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat marked read"})
}
