package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solo-sparks/internal/db"
	"solo-sparks/internal/quest"
	"solo-sparks/internal/rewards"
)

// GET /progress
func ProgressHandler(svc *services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		records, err := quest.RecordsForUser(db.DB, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load quests"}})
			return
		}
		reflections, err := quest.ReflectionsForUser(db.DB, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load reflections"}})
			return
		}
		total, err := rewards.Total(db.DB, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load points"}})
			return
		}
		c.JSON(http.StatusOK, svc.progress.Summarize(records, reflections, total, clock()))
	}
}

// GET /points
func PointsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		history, err := rewards.History(db.DB, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load points"}})
			return
		}
		total := 0
		for _, row := range history {
			total += row.Points
		}
		c.JSON(http.StatusOK, gin.H{
			"sparkPoints": history,
			"totalPoints": total,
		})
	}
}
