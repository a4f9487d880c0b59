package repositories

import (
	"errors"
	"gorm.io/gorm"
	"time"
	"walk2gether-api/models"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// UpdateUserLocation updates or creates user's live location
func (r *LocationRepository) UpdateUserLocation(location *models.UserLocation) error {
	var existingLocation models.UserLocation
	err := r.db.Where("user_id = ?", location.UserID).First(&existingLocation).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(location).Error
		}
		return err
	}

	return r.db.Model(&existingLocation).Updates(map[string]interface{}{
		"latitude":   location.Latitude,
		"longitude":  location.Longitude,
		"accuracy":   location.Accuracy,
		"is_online":  location.IsOnline,
		"last_seen":  location.LastSeen,
		"updated_at": time.Now(),
	}).Error
}

// GetUserLocation retrieves a user's current live location
func (r *LocationRepository) GetUserLocation(userID string) (*models.UserLocation, error) {
	var location models.UserLocation
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// GetLocationsForUsers retrieves live locations for a set of users
func (r *LocationRepository) GetLocationsForUsers(userIDs []string) ([]models.UserLocation, error) {
	var locations []models.UserLocation
	if len(userIDs) == 0 {
		return locations, nil
	}
	err := r.db.Preload("User").Where("user_id IN ?", userIDs).Find(&locations).Error
	return locations, err
}

// MarkStaleOffline flags locations not refreshed since the cutoff as offline
func (r *LocationRepository) MarkStaleOffline(cutoff time.Time) (int64, error) {
	result := r.db.Model(&models.UserLocation{}).
		Where("is_online = ? AND last_seen < ?", true, cutoff).
		Update("is_online", false)
	return result.RowsAffected, result.Error
}
