package controllers

import (
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"net/http"
	"strconv"
	"walk2gether-api/models"
	"walk2gether-api/services"
)

type MessageController struct {
	db                  *gorm.DB
	notificationService *services.NotificationService
}

func NewMessageController(db *gorm.DB, notificationService *services.NotificationService) *MessageController {
	return &MessageController{
		db:                  db,
		notificationService: notificationService,
	}
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// SendMessage posts a message to a walk's group chat. Only accepted
// participants may post.
func (mc *MessageController) SendMessage(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var participant models.Participant
	if err := mc.db.Where("walk_id = ? AND user_id = ? AND accepted_at IS NOT NULL", walkID, userID).
		First(&participant).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Must be an accepted participant to chat"})
		return
	}

	var sender models.User
	if err := mc.db.First(&sender, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	message := models.ChatMessage{
		ID:           uuid.New().String(),
		WalkID:       walkID,
		SenderID:     userID,
		SenderName:   sender.Name,
		SenderAvatar: sender.AvatarInitial(),
		Text:         req.Text,
	}

	if err := mc.db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// Notify the other accepted participants
	var others []models.Participant
	if err := mc.db.Where("walk_id = ? AND user_id != ? AND accepted_at IS NOT NULL AND cancelled_at IS NULL",
		walkID, userID).Find(&others).Error; err == nil {
		for _, other := range others {
			if err := mc.notificationService.NotifyChatMessage(userID, other.UserID, walkID); err != nil {
				fmt.Printf("Failed to create chat notification: %v\n", err)
			}
		}
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessages returns a walk's chat history, oldest first
func (mc *MessageController) GetMessages(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	var participant models.Participant
	if err := mc.db.Where("walk_id = ? AND user_id = ? AND accepted_at IS NOT NULL", walkID, userID).
		First(&participant).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Must be an accepted participant to read the chat"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset := (page - 1) * limit

	var messages []models.ChatMessage
	if err := mc.db.Where("walk_id = ?", walkID).
		Order("created_at ASC").Offset(offset).Limit(limit).Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"page":     page,
		"limit":    limit,
	})
}
