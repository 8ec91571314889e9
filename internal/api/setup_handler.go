package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"solo-sparks/internal/db"
	"solo-sparks/internal/user"
)

type SetupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /setup creates the first admin. It is refused once any user exists.
func SetupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		exists, err := user.Exists(db.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
			return
		}
		if exists {
			c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Setup not allowed; users already exist"}})
			return
		}
		var req SetupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Username and password required"}})
			return
		}
		u, err := user.Create(db.DB, req.Username, "", req.Password, user.RoleAdmin)
		if errors.Is(err, user.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Username already exists"}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
			return
		}
		resp := userJSON(*u)
		resp["setup_complete"] = true
		c.JSON(http.StatusCreated, resp)
	}
}
