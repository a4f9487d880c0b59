package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"strconv"
	"walk2gether-api/models"
	"walk2gether-api/utils"
)

type NotificationController struct {
	db *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{db: db}
}

func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	var total int64
	nc.db.Model(&models.Notification{}).Where("target_user_id = ?", userID).Count(&total)

	var notifications []models.Notification
	if err := nc.db.Preload("ActorUser").Preload("Walk").
		Where("target_user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}

	utils.SendPaginated(c, responses, page, limit, total)
}

func (nc *NotificationController) GetStats(c *gin.Context) {
	userID := c.GetString("user_id")

	var stats models.NotificationStats
	var unread, total int64

	nc.db.Model(&models.Notification{}).Where("target_user_id = ? AND is_read = ?", userID, false).Count(&unread)
	nc.db.Model(&models.Notification{}).Where("target_user_id = ?", userID).Count(&total)

	stats.UnreadCount = int(unread)
	stats.TotalCount = int(total)

	c.JSON(http.StatusOK, stats)
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	result := nc.db.Model(&models.Notification{}).
		Where("id = ? AND target_user_id = ?", notificationID, userID).
		Update("is_read", true)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
