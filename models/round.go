package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Pair is two participants walking together during one round of a meetup walk
type Pair struct {
	UserIDs     []string `json:"user_ids"`
	Color       string   `json:"color"`
	EmojiMarker string   `json:"emoji_marker"`
}

// PairSlice stores a round's pairs as a JSON column
type PairSlice []Pair

func (ps PairSlice) Value() (driver.Value, error) {
	if ps == nil {
		return nil, nil
	}
	return json.Marshal(ps)
}

func (ps *PairSlice) Scan(value interface{}) error {
	if value == nil {
		*ps = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ps)
	case string:
		return json.Unmarshal([]byte(v), ps)
	default:
		return fmt.Errorf("cannot scan %T into PairSlice", value)
	}
}

func (PairSlice) GormDataType() string {
	return "json"
}

// Round is one rotation of conversation pairs during a meetup walk
type Round struct {
	ID              string     `json:"id" gorm:"primaryKey;size:191"`
	WalkID          string     `json:"walk_id" gorm:"not null;size:191;index"`
	Number          int        `json:"number" gorm:"not null"`
	QuestionPrompt  string     `json:"question_prompt" gorm:"size:500"`
	DurationMinutes int        `json:"duration_minutes" gorm:"not null;default:5"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	Pairs           PairSlice  `json:"pairs" gorm:"type:json"`
	CreatedAt       time.Time  `json:"created_at"`

	Walk Walk `json:"-" gorm:"foreignKey:WalkID"`
}

// EndTime returns when the round's timer runs out
func (r *Round) EndTime() time.Time {
	return r.StartedAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}
