package services

import (
	"errors"
	"log"
	"math"
	"time"
	"walk2gether-api/models"
	"walk2gether-api/repositories"
	"walk2gether-api/utils"
)

type LocationService struct {
	locationRepo    *repositories.LocationRepository
	participantRepo *repositories.ParticipantRepository
}

func NewLocationService(locationRepo *repositories.LocationRepository, participantRepo *repositories.ParticipantRepository) *LocationService {
	return &LocationService{
		locationRepo:    locationRepo,
		participantRepo: participantRepo,
	}
}

// UpdateLocation updates user's current live location. When a walk id is
// given the participant row is refreshed too (last position plus the
// client-computed route to the meetup point); that part is best-effort,
// failures are logged and the location update still succeeds.
func (s *LocationService) UpdateLocation(userID string, req models.UpdateLocationRequest, user *models.User) error {
	if !utils.IsValidLatitude(req.Latitude) || !utils.IsValidLongitude(req.Longitude) {
		return errors.New("invalid coordinates")
	}

	location := &models.UserLocation{
		ID:        userID + "_location",
		UserID:    userID,
		Username:  user.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy,
		IsOnline:  true,
		LastSeen:  time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.locationRepo.UpdateUserLocation(location); err != nil {
		return err
	}

	if req.WalkID != "" {
		if err := s.refreshParticipantLocation(req.WalkID, userID, req); err != nil {
			log.Printf("Failed to refresh participant location for walk %s: %v", req.WalkID, err)
		}
	}

	return nil
}

func (s *LocationService) refreshParticipantLocation(walkID, userID string, req models.UpdateLocationRequest) error {
	participant, err := s.participantRepo.Get(walkID, userID)
	if err != nil {
		return err
	}
	if participant == nil {
		return errors.New("not a participant of this walk")
	}

	now := time.Now()
	return s.participantRepo.ApplyPatch(participant, map[string]interface{}{
		"last_latitude":          req.Latitude,
		"last_longitude":         req.Longitude,
		"location_updated_at":    now,
		"route_distance_text":    req.RouteDistanceText,
		"route_duration_text":    req.RouteDurationText,
		"route_duration_seconds": req.RouteDurationSeconds,
	})
}

// GetFriendLocations returns live locations for the given friend ids,
// with distance from the requesting user when their own location is known
func (s *LocationService) GetFriendLocations(userID string, friendIDs []string) ([]models.NearbyFriendResponse, error) {
	locations, err := s.locationRepo.GetLocationsForUsers(friendIDs)
	if err != nil {
		return nil, err
	}

	var ownLat, ownLng float64
	hasOwn := false
	if own, err := s.locationRepo.GetUserLocation(userID); err == nil {
		ownLat, ownLng = own.Latitude, own.Longitude
		hasOwn = true
	}

	responses := make([]models.NearbyFriendResponse, 0, len(locations))
	for _, loc := range locations {
		if !loc.IsOnline {
			continue
		}
		resp := models.NearbyFriendResponse{
			ID:        loc.UserID,
			Name:      loc.User.Name,
			Avatar:    loc.User.Avatar,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			LastSeen:  loc.LastSeen,
		}
		if hasOwn {
			resp.DistanceKm = haversineKm(ownLat, ownLng, loc.Latitude, loc.Longitude)
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// MarkStaleOffline flags live locations older than the cutoff as offline
func (s *LocationService) MarkStaleOffline(maxAge time.Duration) (int64, error) {
	return s.locationRepo.MarkStaleOffline(time.Now().Add(-maxAge))
}

// haversineKm calculates the great-circle distance between two points
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
