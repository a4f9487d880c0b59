package models

import (
	"time"
)

type WalkType string

const (
	WalkTypeFriends      WalkType = "friends"
	WalkTypeNeighborhood WalkType = "neighborhood"
	WalkTypeMeetup       WalkType = "meetup"
)

// WalkTimeStatus is the temporal status of a walk relative to now
type WalkTimeStatus string

const (
	WalkTimeStatusFuture WalkTimeStatus = "future"
	WalkTimeStatusActive WalkTimeStatus = "active"
	WalkTimeStatusPast   WalkTimeStatus = "past"
)

type Walk struct {
	ID                string      `json:"id" gorm:"primaryKey;size:191"`
	Type              WalkType    `json:"type" gorm:"not null;size:50"`
	CreatedByUID      string      `json:"created_by_uid" gorm:"not null;size:191;index"`
	OrganizerName     string      `json:"organizer_name" gorm:"not null;size:255"`
	OrganizerAvatar   string      `json:"organizer_avatar" gorm:"size:10"`
	Date              time.Time   `json:"date" gorm:"not null"`
	DurationMinutes   int         `json:"duration_minutes" gorm:"not null;default:60"`
	LocationName      string      `json:"location_name" gorm:"not null;size:255"`
	LocationLatitude  float64     `json:"location_latitude" gorm:"not null"`
	LocationLongitude float64     `json:"location_longitude" gorm:"not null"`
	LocationAddress   string      `json:"location_address" gorm:"size:500"`
	InvitedUserIDs    StringSlice `json:"invited_user_ids" gorm:"type:json"`
	ParticipantsCount int         `json:"participants_count" gorm:"default:0"`
	CurrentRoundID    *string     `json:"current_round_id" gorm:"size:191"`
	CancelledAt       *time.Time  `json:"cancelled_at"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	Organizer    User          `json:"organizer" gorm:"foreignKey:CreatedByUID"`
	Participants []Participant `json:"participants" gorm:"foreignKey:WalkID"`
}

// EndTime returns the scheduled end of the walk
func (w *Walk) EndTime() time.Time {
	return w.Date.Add(time.Duration(w.DurationMinutes) * time.Minute)
}

// TimeStatusAt classifies the walk as future, active or past at the given instant
func (w *Walk) TimeStatusAt(now time.Time) WalkTimeStatus {
	if now.Before(w.Date) {
		return WalkTimeStatusFuture
	}
	if now.Before(w.EndTime()) {
		return WalkTimeStatusActive
	}
	return WalkTimeStatusPast
}

// IsOrganizer reports whether the given user created this walk
func (w *Walk) IsOrganizer(userID string) bool {
	return w.CreatedByUID == userID
}
