package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solo-sparks/internal/db"
	"solo-sparks/internal/profile"
)

const moodHistoryLimit = 30

// MoodRequest carries the raw scales; range checks live on profile.MoodEntry.
type MoodRequest struct {
	Mood   int    `json:"mood" binding:"required"`
	Energy int    `json:"energy" binding:"required"`
	Stress int    `json:"stress" binding:"required"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// GET /mood
func ListMoodsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := profile.RecentMoods(db.DB, currentUserID(c), moodHistoryLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load mood entries"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"moodEntries": entries})
	}
}

// POST /mood
func LogMoodHandler(svc *services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		var req MoodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "mood, energy and stress are required"}})
			return
		}
		entry := profile.MoodEntry{
			UserID: userID,
			Mood:   req.Mood,
			Energy: req.Energy,
			Stress: req.Stress,
			Notes:  req.Notes,
		}
		if err := entry.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "mood, energy and stress must be between 1 and 10"}})
			return
		}
		if err := profile.LogMood(db.DB, &entry); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to save mood entry"}})
			return
		}
		invalidateRecommendations(c, svc, userID)
		c.JSON(http.StatusCreated, gin.H{"moodEntry": entry})
	}
}
