package controllers

import (
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"net/http"
	"strconv"
	"time"
	"walk2gether-api/models"
	"walk2gether-api/services"
	"walk2gether-api/utils"
)

type WalkController struct {
	db                  *gorm.DB
	emailService        *services.EmailService
	notificationService *services.NotificationService
}

func NewWalkController(db *gorm.DB, emailService *services.EmailService, notificationService *services.NotificationService) *WalkController {
	return &WalkController{
		db:                  db,
		emailService:        emailService,
		notificationService: notificationService,
	}
}

type CreateWalkRequest struct {
	Type            models.WalkType `json:"type" binding:"required,oneof=friends neighborhood meetup"`
	Date            time.Time       `json:"date" binding:"required"`
	DurationMinutes int             `json:"duration_minutes" binding:"required"`
	LocationName    string          `json:"location_name" binding:"required"`
	Location        models.LatLng   `json:"location" binding:"required"`
	LocationAddress string          `json:"location_address"`
	InvitedUserIDs  []string        `json:"invited_user_ids"`
}

func (wc *WalkController) CreateWalk(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateWalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Date.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Walk date must be in the future"})
		return
	}
	if !utils.IsValidWalkDuration(req.DurationMinutes) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Walk duration must be between 15 and 240 minutes"})
		return
	}
	if !utils.IsValidLatitude(req.Location.Latitude) || !utils.IsValidLongitude(req.Location.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meetup location coordinates"})
		return
	}

	var organizer models.User
	if err := wc.db.First(&organizer, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	walk := models.Walk{
		ID:                uuid.New().String(),
		Type:              req.Type,
		CreatedByUID:      userID,
		OrganizerName:     organizer.Name,
		OrganizerAvatar:   organizer.AvatarInitial(),
		Date:              req.Date,
		DurationMinutes:   req.DurationMinutes,
		LocationName:      req.LocationName,
		LocationLatitude:  req.Location.Latitude,
		LocationLongitude: req.Location.Longitude,
		LocationAddress:   req.LocationAddress,
		InvitedUserIDs:    models.StringSlice(req.InvitedUserIDs),
		ParticipantsCount: 1, // Organizer is automatically a participant
	}

	if err := wc.db.Create(&walk).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create walk"})
		return
	}

	// Add organizer as an accepted participant
	now := time.Now()
	photoURL := organizer.Avatar
	participant := models.Participant{
		WalkID:      walk.ID,
		UserID:      userID,
		DisplayName: organizer.Name,
		PhotoURL:    photoURL,
		Status:      models.ParticipantStatusPending,
		SourceType:  models.ParticipantSourceWalkCreator,
		AcceptedAt:  &now,
	}
	wc.db.Create(&participant)

	wc.inviteUsers(&walk, userID, req.InvitedUserIDs)

	c.JSON(http.StatusCreated, walk)
}

// inviteUsers creates pre-accepted participant rows for invited friends and
// notifies them. Invitation side effects are best-effort.
func (wc *WalkController) inviteUsers(walk *models.Walk, organizerID string, invitedIDs []string) {
	now := time.Now()
	for _, invitedID := range invitedIDs {
		if invitedID == organizerID {
			continue
		}

		var invited models.User
		if err := wc.db.First(&invited, "id = ?", invitedID).Error; err != nil {
			fmt.Printf("Skipping invite for unknown user %s\n", invitedID)
			continue
		}

		// Invited friends join pre-accepted; only requests need approval
		participant := models.Participant{
			WalkID:      walk.ID,
			UserID:      invitedID,
			DisplayName: invited.Name,
			PhotoURL:    invited.Avatar,
			Status:      models.ParticipantStatusPending,
			SourceType:  models.ParticipantSourceInvited,
			AcceptedAt:  &now,
		}
		if err := wc.db.Create(&participant).Error; err != nil {
			fmt.Printf("Failed to create participant for invited user %s: %v\n", invitedID, err)
			continue
		}

		if err := wc.notificationService.NotifyWalkInvitation(organizerID, invitedID, walk.ID); err != nil {
			fmt.Printf("Failed to create walk invitation notification: %v\n", err)
		}
		if err := wc.emailService.SendWalkInvitationEmail(invited.Email, invited.Name, walk); err != nil {
			fmt.Printf("Failed to send walk invitation email: %v\n", err)
		}
	}
}

func (wc *WalkController) GetWalks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset := (page - 1) * limit

	var walks []models.Walk
	query := wc.db.Preload("Organizer").
		Where("date > ? AND cancelled_at IS NULL", time.Now())

	if walkType := c.Query("type"); walkType != "" {
		query = query.Where("type = ?", walkType)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("location_name LIKE ? OR organizer_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Order("date ASC").Offset(offset).Limit(limit).Find(&walks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch walks"})
		return
	}

	for i := range walks {
		walks[i].Organizer.Password = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"walks": walks,
		"page":  page,
		"limit": limit,
	})
}

func (wc *WalkController) GetWalk(c *gin.Context) {
	walkID := c.Param("id")

	var walk models.Walk
	if err := wc.db.Preload("Organizer").Preload("Participants").
		First(&walk, "id = ?", walkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Walk not found"})
		return
	}

	walk.Organizer.Password = ""
	models.SortParticipants(walk.Participants, walk.CreatedByUID)

	c.JSON(http.StatusOK, gin.H{
		"walk":        walk,
		"time_status": walk.TimeStatusAt(time.Now()),
	})
}

type UpdateWalkRequest struct {
	Date            time.Time     `json:"date" binding:"required"`
	DurationMinutes int           `json:"duration_minutes" binding:"required"`
	LocationName    string        `json:"location_name" binding:"required"`
	Location        models.LatLng `json:"location" binding:"required"`
	LocationAddress string        `json:"location_address"`
}

func (wc *WalkController) UpdateWalk(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	var walk models.Walk
	if err := wc.db.First(&walk, "id = ? AND created_by_uid = ?", walkID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Walk not found or access denied"})
		return
	}

	var req UpdateWalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidWalkDuration(req.DurationMinutes) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Walk duration must be between 15 and 240 minutes"})
		return
	}

	updates := map[string]interface{}{
		"date":               req.Date,
		"duration_minutes":   req.DurationMinutes,
		"location_name":      req.LocationName,
		"location_latitude":  req.Location.Latitude,
		"location_longitude": req.Location.Longitude,
		"location_address":   req.LocationAddress,
	}

	if err := wc.db.Model(&walk).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update walk"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Walk updated successfully"})
}

func (wc *WalkController) CancelWalk(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	var walk models.Walk
	if err := wc.db.First(&walk, "id = ? AND created_by_uid = ?", walkID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Walk not found or access denied"})
		return
	}

	if walk.CancelledAt != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Walk is already cancelled"})
		return
	}

	if err := wc.db.Model(&walk).Update("cancelled_at", time.Now()).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel walk"})
		return
	}

	// Tell everyone who had joined
	var participants []models.Participant
	if err := wc.db.Where("walk_id = ? AND accepted_at IS NOT NULL", walkID).Find(&participants).Error; err == nil {
		for _, p := range participants {
			if err := wc.notificationService.NotifyWalkCancelled(userID, p.UserID, walkID); err != nil {
				fmt.Printf("Failed to create walk cancellation notification: %v\n", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Walk cancelled successfully"})
}

func (wc *WalkController) GetJoinedWalks(c *gin.Context) {
	userID := c.GetString("user_id")

	var participants []models.Participant
	if err := wc.db.Preload("Walk").Preload("Walk.Organizer").
		Where("user_id = ? AND accepted_at IS NOT NULL", userID).
		Find(&participants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch joined walks"})
		return
	}

	walks := make([]models.Walk, 0, len(participants))
	for _, participant := range participants {
		participant.Walk.Organizer.Password = ""
		walks = append(walks, participant.Walk)
	}

	c.JSON(http.StatusOK, walks)
}

func (wc *WalkController) GetCreatedWalks(c *gin.Context) {
	userID := c.GetString("user_id")

	var walks []models.Walk
	if err := wc.db.Preload("Participants").Where("created_by_uid = ?", userID).
		Order("date DESC").Find(&walks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created walks"})
		return
	}

	c.JSON(http.StatusOK, walks)
}

type InviteUsersRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1"`
}

// InviteUsers adds more invited participants to an existing walk
func (wc *WalkController) InviteUsers(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	var walk models.Walk
	if err := wc.db.First(&walk, "id = ? AND created_by_uid = ?", walkID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Walk not found or access denied"})
		return
	}

	var req InviteUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Skip users that already have a participant row
	var newIDs []string
	for _, id := range req.UserIDs {
		var existing models.Participant
		if err := wc.db.Where("walk_id = ? AND user_id = ?", walkID, id).First(&existing).Error; err != nil {
			newIDs = append(newIDs, id)
		}
	}

	wc.inviteUsers(&walk, userID, newIDs)

	invited := append(models.StringSlice{}, walk.InvitedUserIDs...)
	invited = append(invited, newIDs...)
	wc.db.Model(&walk).Update("invited_user_ids", invited)

	c.JSON(http.StatusOK, gin.H{"message": "Invitations sent", "invited": newIDs})
}
