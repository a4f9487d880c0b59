package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"walk2gether-api/models"
)

// NotificationService persists in-app notifications. Callers treat failures
// as non-fatal: a missed notification never blocks the action that caused it.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (ns *NotificationService) create(notificationType models.NotificationType, actorID, targetID string, walkID *string) error {
	if actorID == targetID {
		return nil
	}

	notification := models.Notification{
		ID:           uuid.New().String(),
		Type:         notificationType,
		ActorUserID:  actorID,
		TargetUserID: targetID,
		WalkID:       walkID,
	}

	return ns.db.Create(&notification).Error
}

func (ns *NotificationService) NotifyWalkInvitation(actorID, targetID, walkID string) error {
	return ns.create(models.NotificationTypeWalkInvitation, actorID, targetID, &walkID)
}

func (ns *NotificationService) NotifyJoinRequest(actorID, targetID, walkID string) error {
	return ns.create(models.NotificationTypeJoinRequest, actorID, targetID, &walkID)
}

func (ns *NotificationService) NotifyRequestApproved(actorID, targetID, walkID string) error {
	return ns.create(models.NotificationTypeRequestApproved, actorID, targetID, &walkID)
}

func (ns *NotificationService) NotifyRequestDenied(actorID, targetID, walkID string) error {
	return ns.create(models.NotificationTypeRequestDenied, actorID, targetID, &walkID)
}

func (ns *NotificationService) NotifyFriendRequest(actorID, targetID string) error {
	return ns.create(models.NotificationTypeFriendRequest, actorID, targetID, nil)
}

func (ns *NotificationService) NotifyWalkCancelled(actorID, targetID, walkID string) error {
	return ns.create(models.NotificationTypeWalkCancelled, actorID, targetID, &walkID)
}

func (ns *NotificationService) NotifyChatMessage(actorID, targetID, walkID string) error {
	return ns.create(models.NotificationTypeChatMessage, actorID, targetID, &walkID)
}
