package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	NotificationTypeWalkInvitation  NotificationType = "walk_invitation"
	NotificationTypeJoinRequest     NotificationType = "join_request"
	NotificationTypeRequestApproved NotificationType = "request_approved"
	NotificationTypeRequestDenied   NotificationType = "request_denied"
	NotificationTypeFriendRequest   NotificationType = "friend_request"
	NotificationTypeChatMessage     NotificationType = "chat_message"
	NotificationTypeWalkCancelled   NotificationType = "walk_cancelled"
)

type Notification struct {
	ID           string           `json:"id" gorm:"primaryKey;size:191"`
	Type         NotificationType `json:"type" gorm:"not null;size:50"`
	ActorUserID  string           `json:"actor_user_id" gorm:"not null;size:191"`  // Who performed the action
	TargetUserID string           `json:"target_user_id" gorm:"not null;size:191"` // Who receives the notification
	WalkID       *string          `json:"walk_id" gorm:"size:191"`                 // Optional: related walk
	IsRead       bool             `json:"is_read" gorm:"default:false"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relationships
	ActorUser  User  `json:"actor_user" gorm:"foreignKey:ActorUserID"`
	TargetUser User  `json:"target_user" gorm:"foreignKey:TargetUserID"`
	Walk       *Walk `json:"walk,omitempty" gorm:"foreignKey:WalkID"`
}

// NotificationResponse represents the API response for notifications
type NotificationResponse struct {
	ID        string            `json:"id"`
	Type      NotificationType  `json:"type"`
	ActorUser NotificationUser  `json:"actor_user"`
	Walk      *NotificationWalk `json:"walk,omitempty"`
	IsRead    bool              `json:"is_read"`
	CreatedAt time.Time         `json:"created_at"`
	Message   string            `json:"message"`
	TimeAgo   string            `json:"time_ago"`
}

type NotificationUser struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Handle string  `json:"handle"`
	Avatar *string `json:"avatar"`
}

type NotificationWalk struct {
	ID           string    `json:"id"`
	LocationName string    `json:"location_name"`
	Date         time.Time `json:"date"`
}

// NotificationStats represents notification statistics
type NotificationStats struct {
	UnreadCount int `json:"unread_count"`
	TotalCount  int `json:"total_count"`
}

// GetNotificationMessage returns a human-readable message for the notification
func (n *Notification) GetNotificationMessage() string {
	switch n.Type {
	case NotificationTypeWalkInvitation:
		return "invited you to a walk"
	case NotificationTypeJoinRequest:
		return "asked to join your walk"
	case NotificationTypeRequestApproved:
		return "approved your request to join"
	case NotificationTypeRequestDenied:
		return "declined your request to join"
	case NotificationTypeFriendRequest:
		return "sent you a friend request"
	case NotificationTypeChatMessage:
		return "sent a message in your walk"
	case NotificationTypeWalkCancelled:
		return "cancelled a walk you joined"
	default:
		return "interacted with you"
	}
}

// GetTimeAgo returns a human-readable time difference
func (n *Notification) GetTimeAgo() string {
	now := time.Now()
	diff := now.Sub(n.CreatedAt)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		minutes := int(diff.Minutes())
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		weeks := int(diff.Hours() / (24 * 7))
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
}

// ToResponse converts Notification to NotificationResponse
func (n *Notification) ToResponse() NotificationResponse {
	response := NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
		Message:   n.GetNotificationMessage(),
		TimeAgo:   n.GetTimeAgo(),
		ActorUser: NotificationUser{
			ID:     n.ActorUser.ID,
			Name:   n.ActorUser.Name,
			Handle: n.ActorUser.Handle,
			Avatar: n.ActorUser.Avatar,
		},
	}

	if n.Walk != nil {
		response.Walk = &NotificationWalk{
			ID:           n.Walk.ID,
			LocationName: n.Walk.LocationName,
			Date:         n.Walk.Date,
		}
	}

	return response
}
