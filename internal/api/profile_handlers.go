package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"solo-sparks/internal/db"
	"solo-sparks/internal/profile"
	"solo-sparks/internal/rewards"
)

// GET /profile
func GetProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := profile.Get(db.DB, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load profile"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": p})
	}
}

// POST /profile replaces the assessment and grants the assessment points.
func SaveProfileHandler(svc *services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		var in profile.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if err := in.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}

		var saved *profile.Profile
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			p, err := profile.Upsert(tx, userID, in)
			if err != nil {
				return err
			}
			saved = p
			return rewards.Award(tx, userID, rewards.AssessmentPoints, rewards.SourceAssessment, "")
		})
		if err != nil {
			svc.log.WithError(err).WithField("user", userID).Error("profile save failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to save profile"}})
			return
		}
		invalidateRecommendations(c, svc, userID)
		c.JSON(http.StatusOK, gin.H{
			"profile":      saved,
			"message":      "Profile saved",
			"pointsEarned": rewards.AssessmentPoints,
		})
	}
}

// invalidateRecommendations drops the cached list after a state change.
// A cache failure only costs a stale list until the TTL runs out.
func invalidateRecommendations(c *gin.Context, svc *services, userID string) {
	if err := svc.cache.Invalidate(c.Request.Context(), userID); err != nil {
		svc.log.WithError(err).WithField("user", userID).Warn("recommendation cache invalidate failed")
	}
}

// errorStatus maps store sentinels onto HTTP statuses.
func errorStatus(err error, table map[error]int) int {
	for sentinel, status := range table {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return http.StatusInternalServerError
}
