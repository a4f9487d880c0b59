package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UserLocation stores the current live location of a user
type UserLocation struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex"`
	Username  string    `json:"username" gorm:"not null"`
	Latitude  float64   `json:"latitude" gorm:"not null"`
	Longitude float64   `json:"longitude" gorm:"not null"`
	Accuracy  float64   `json:"accuracy"` // Accuracy in meters
	IsOnline  bool      `json:"is_online" gorm:"default:false"`
	LastSeen  time.Time `json:"last_seen"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

func (UserLocation) TableName() string {
	return "user_locations"
}

// LatLng is a coordinate pair. Older clients sent the meetup location as a
// raw "lat,lng" string; UnmarshalJSON accepts both forms and normalizes.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l *LatLng) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		parts := strings.Split(raw, ",")
		if len(parts) != 2 {
			return fmt.Errorf("invalid location string %q", raw)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return fmt.Errorf("invalid latitude in %q", raw)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return fmt.Errorf("invalid longitude in %q", raw)
		}
		l.Latitude = lat
		l.Longitude = lng
		return nil
	}

	type latLng LatLng
	var structured latLng
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	*l = LatLng(structured)
	return nil
}

// DTO Models for API requests/responses

// UpdateLocationRequest for PUT /locations/update
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Accuracy  float64 `json:"accuracy"`
	WalkID    string  `json:"walk_id"` // Set while a walk is active so the participant row is refreshed too
	// Route to the meetup point, computed client-side by the maps SDK
	RouteDistanceText    string `json:"route_distance_text"`
	RouteDurationText    string `json:"route_duration_text"`
	RouteDurationSeconds int    `json:"route_duration_seconds"`
}

// NearbyFriendResponse represents a friend visible on the map
type NearbyFriendResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Avatar     *string   `json:"avatar"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	LastSeen   time.Time `json:"last_seen"`
	DistanceKm float64   `json:"distance_km,omitempty"`
}
