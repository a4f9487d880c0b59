package controllers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
	"walk2gether-api/services"
)

type RoundController struct {
	roundService *services.RoundService
}

func NewRoundController(roundService *services.RoundService) *RoundController {
	return &RoundController{roundService: roundService}
}

type StartRoundRequest struct {
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=60"`
	QuestionPrompt  string `json:"question_prompt" binding:"max=500"`
}

// StartRound begins a new timed pairing round on a meetup walk
func (rc *RoundController) StartRound(c *gin.Context) {
	userID := c.GetString("user_id")
	walkID := c.Param("id")

	var req StartRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	round, err := rc.roundService.StartRound(walkID, userID, req.DurationMinutes, req.QuestionPrompt)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWalkNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Walk not found"})
		case errors.Is(err, services.ErrNotOrganizer):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the walk organizer can start rounds"})
		case errors.Is(err, services.ErrNoPairableParticipants):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough active participants to form pairs"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start round"})
		}
		return
	}

	c.JSON(http.StatusCreated, round)
}

// GetCurrentRound returns the walk's running round, if any
func (rc *RoundController) GetCurrentRound(c *gin.Context) {
	walkID := c.Param("id")

	round, err := rc.roundService.CurrentRound(walkID)
	if err != nil {
		if errors.Is(err, services.ErrWalkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Walk not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch current round"})
		return
	}

	if round == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": true, "round": round})
}

// GetRounds lists all rounds of a walk
func (rc *RoundController) GetRounds(c *gin.Context) {
	walkID := c.Param("id")

	rounds, err := rc.roundService.ListRounds(walkID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rounds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}
