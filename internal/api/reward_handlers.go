package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solo-sparks/internal/db"
	"solo-sparks/internal/rewards"
)

// GET /rewards
func ListRewardsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		available, err := rewards.ActiveRewards(db.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load rewards"}})
			return
		}
		redeemed, err := rewards.Redeemed(db.DB, currentUserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to load rewards"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rewards": available, "userRewards": redeemed})
	}
}

type RedeemRequest struct {
	RewardID string `json:"rewardId" binding:"required"`
}

// POST /rewards
func RedeemRewardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RedeemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "rewardId required"}})
			return
		}
		ur, err := rewards.Redeem(db.DB, currentUserID(c), req.RewardID, clock())
		if err != nil {
			status := errorStatus(err, map[error]int{
				rewards.ErrRewardNotFound:     http.StatusNotFound,
				rewards.ErrInsufficientPoints: http.StatusBadRequest,
			})
			msg := err.Error()
			if status == http.StatusInternalServerError {
				msg = "Failed to redeem reward"
			}
			c.JSON(status, gin.H{"error": gin.H{"message": msg}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userReward": ur})
	}
}
