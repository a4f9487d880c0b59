package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"net/http"
	"walk2gether-api/models"
	"walk2gether-api/services"
)

type LocationController struct {
	db               *gorm.DB
	locationService  *services.LocationService
	friendController *FriendController
}

func NewLocationController(db *gorm.DB, locationService *services.LocationService, friendController *FriendController) *LocationController {
	return &LocationController{
		db:               db,
		locationService:  locationService,
		friendController: friendController,
	}
}

// UpdateLocation records the caller's live position. Clients post this from
// a background task during walks; the handler stays cheap and tolerant.
func (lc *LocationController) UpdateLocation(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := lc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := lc.locationService.UpdateLocation(userID, req, &user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location updated"})
}

// GetFriendLocations returns live positions of the caller's friends
func (lc *LocationController) GetFriendLocations(c *gin.Context) {
	userID := c.GetString("user_id")

	friendIDs, err := lc.friendController.GetFriendIDs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	locations, err := lc.locationService.GetFriendLocations(userID, friendIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friend locations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(locations),
		"friends": locations,
	})
}
