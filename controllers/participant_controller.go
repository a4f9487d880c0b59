package controllers

import (
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"time"
	"walk2gether-api/models"
	"walk2gether-api/services"
)

type ParticipantController struct {
	db                  *gorm.DB
	participantService  *services.ParticipantService
	notificationService *services.NotificationService
}

func NewParticipantController(db *gorm.DB, participantService *services.ParticipantService, notificationService *services.NotificationService) *ParticipantController {
	return &ParticipantController{
		db:                  db,
		participantService:  participantService,
		notificationService: notificationService,
	}
}

// participantError maps lifecycle errors to HTTP responses
func participantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWalkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Walk not found"})
	case errors.Is(err, services.ErrNotParticipant):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a participant of this walk"})
	case errors.Is(err, services.ErrNotAccepted):
		c.JSON(http.StatusForbidden, gin.H{"error": "You have not been accepted to this walk yet"})
	case errors.Is(err, services.ErrNotCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": "Participation is not cancelled"})
	case errors.Is(err, services.ErrOrganizerCannotCancel):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organizer cannot withdraw from their own walk"})
	case errors.Is(err, services.ErrNotOrganizer):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the walk organizer can do this"})
	case errors.Is(err, services.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"error": "Participant has already been approved or rejected"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update participation"})
	}
}

// RequestToJoin creates an undecided participant awaiting organizer approval
func (pc *ParticipantController) RequestToJoin(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	var walk models.Walk
	if err := pc.db.First(&walk, "id = ?", walkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Walk not found"})
		return
	}

	if walk.CancelledAt != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Walk has been cancelled"})
		return
	}
	if walk.TimeStatusAt(time.Now()) == models.WalkTimeStatusPast {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot join past walks"})
		return
	}

	var existing models.Participant
	if err := pc.db.Where("walk_id = ? AND user_id = ?", walkID, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already requested or joined this walk"})
		return
	}

	var user models.User
	if err := pc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	participant := models.Participant{
		WalkID:      walkID,
		UserID:      userID,
		DisplayName: user.Name,
		PhotoURL:    user.Avatar,
		Status:      models.ParticipantStatusPending,
		SourceType:  models.ParticipantSourceRequested,
	}

	if err := pc.db.Create(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request to join"})
		return
	}

	if err := pc.notificationService.NotifyJoinRequest(userID, walk.CreatedByUID, walkID); err != nil {
		fmt.Printf("Failed to create join request notification: %v\n", err)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Request to join sent", "participant": participant})
}

// participantView is a participant with the display state derived for the
// walk's current temporal status
type participantView struct {
	models.Participant
	StatusInfo models.StatusInfo `json:"status_info"`
}

// GetParticipants lists a walk's participants in display order
func (pc *ParticipantController) GetParticipants(c *gin.Context) {
	walkID := c.Param("id")

	participants, walk, err := pc.participantService.ListSorted(walkID)
	if err != nil {
		participantError(c, err)
		return
	}

	walkStatus := walk.TimeStatusAt(time.Now())
	views := make([]participantView, 0, len(participants))
	for _, p := range participants {
		views = append(views, participantView{
			Participant: p,
			StatusInfo:  p.StatusInfo(walkStatus),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"participants": views,
		"walk_status":  walkStatus,
	})
}

// GetMyParticipation returns the caller's own participant row. A missing
// row means "not joined" and is a normal response, not an error.
func (pc *ParticipantController) GetMyParticipation(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	var walk models.Walk
	if err := pc.db.First(&walk, "id = ?", walkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Walk not found"})
		return
	}

	var participant models.Participant
	err := pc.db.Where("walk_id = ? AND user_id = ?", walkID, userID).First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"joined": false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"joined":      true,
		"participant": participant,
		"status_info": participant.StatusInfo(walk.TimeStatusAt(time.Now())),
	})
}

type UpdateStatusRequest struct {
	Status           models.ParticipantStatus `json:"status" binding:"required,oneof=pending on-the-way arrived"`
	NavigationMethod models.NavigationMethod  `json:"navigation_method" binding:"omitempty,oneof=walking driving"`
}

// UpdateStatus transitions the caller's own status on a walk
func (pc *ParticipantController) UpdateStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := pc.participantService.TransitionStatus(walkID, userID, req.Status, req.NavigationMethod)
	if err != nil {
		participantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "participant": participant})
}

// CancelParticipation withdraws the caller from a walk
func (pc *ParticipantController) CancelParticipation(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	participant, err := pc.participantService.CancelParticipation(walkID, userID)
	if err != nil {
		participantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participation cancelled", "participant": participant})
}

// ReactivateParticipation rejoins a walk after a cancellation
func (pc *ParticipantController) ReactivateParticipation(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	participant, err := pc.participantService.ReactivateParticipation(walkID, userID)
	if err != nil {
		participantError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participation reactivated", "participant": participant})
}

// ApproveParticipant accepts a pending join request (organizer only)
func (pc *ParticipantController) ApproveParticipant(c *gin.Context) {
	actorID := c.GetString("user_id")
	walkID := c.Param("id")
	participantUserID := c.Param("user_id")

	participant, err := pc.participantService.Approve(walkID, participantUserID, actorID)
	if err != nil {
		participantError(c, err)
		return
	}

	if err := pc.notificationService.NotifyRequestApproved(actorID, participantUserID, walkID); err != nil {
		fmt.Printf("Failed to create approval notification: %v\n", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participant approved", "participant": participant})
}

// RejectParticipant declines a pending join request (organizer only)
func (pc *ParticipantController) RejectParticipant(c *gin.Context) {
	actorID := c.GetString("user_id")
	walkID := c.Param("id")
	participantUserID := c.Param("user_id")

	participant, err := pc.participantService.Reject(walkID, participantUserID, actorID)
	if err != nil {
		participantError(c, err)
		return
	}

	if err := pc.notificationService.NotifyRequestDenied(actorID, participantUserID, walkID); err != nil {
		fmt.Printf("Failed to create rejection notification: %v\n", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participant rejected", "participant": participant})
}
