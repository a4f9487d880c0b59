package models

import (
	"strings"
	"time"
)

type User struct {
	ID            string    `json:"id" gorm:"primaryKey;size:191"`
	Name          string    `json:"name" gorm:"not null;size:255"`
	Handle        string    `json:"handle" gorm:"uniqueIndex;not null;size:50"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password      string    `json:"-" gorm:"not null;size:255"`
	EmailVerified bool      `json:"email_verified" gorm:"default:false"`
	Avatar        *string   `json:"avatar" gorm:"size:500"`
	About         string    `json:"about" gorm:"size:500"`
	FriendsCount  int       `json:"friends_count" gorm:"default:0"`
	WalksCount    int       `json:"walks_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	CreatedWalks   []Walk        `json:"created_walks" gorm:"foreignKey:CreatedByUID"`
	Participations []Participant `json:"participations" gorm:"foreignKey:UserID"`
}

// GenerateHandleFromName creates a unique handle from the user's name
func GenerateHandleFromName(name string) string {
	// Convert to lowercase and replace spaces with underscores
	handle := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	// Remove special characters
	handle = strings.ReplaceAll(handle, ".", "")
	handle = strings.ReplaceAll(handle, "-", "_")
	return handle
}

// AvatarInitial returns the single-letter avatar fallback used on walk cards
func (u *User) AvatarInitial() string {
	if u.Name == "" {
		return "?"
	}
	return strings.ToUpper(u.Name[:1])
}
