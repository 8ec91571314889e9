package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"solo-sparks/internal/config"
)

// clock is swapped in tests that need a fixed time.
var clock = time.Now

// currentUserID returns the id set by the auth middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString("userId")
}

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
			},
			"recommend": gin.H{
				"limit": cfg.Recommend.Limit,
			},
		})
	}
}
