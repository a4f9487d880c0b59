package models

import "time"

// ChatMessage is a single message in a walk's group chat
type ChatMessage struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	WalkID       string    `json:"walk_id" gorm:"not null;size:191;index"`
	SenderID     string    `json:"sender_id" gorm:"not null;size:191"`
	SenderName   string    `json:"sender_name" gorm:"not null;size:255"`
	SenderAvatar string    `json:"sender_avatar" gorm:"size:10"`
	Text         string    `json:"text" gorm:"not null;type:text"`
	CreatedAt    time.Time `json:"created_at"`

	Walk   Walk `json:"-" gorm:"foreignKey:WalkID"`
	Sender User `json:"-" gorm:"foreignKey:SenderID"`
}
