package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"solo-sparks/internal/auth"
	"solo-sparks/internal/db"
	"solo-sparks/internal/user"
)

func userJSON(u user.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"name":      u.Name,
		"role":      u.Role,
		"createdAt": u.CreatedAt,
	}
}

// loadUser writes a 404 and returns false when id does not exist.
func loadUser(c *gin.Context, id string) (user.User, bool) {
	var u user.User
	err := db.DB.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "User not found"}})
		return u, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "DB error"}})
		return u, false
	}
	return u, true
}

// GET /users  [admin only]
func ListUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []user.User
		if err := db.DB.Order("created_at asc").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		result := make([]gin.H, 0, len(users))
		for _, u := range users {
			result = append(result, userJSON(u))
		}
		c.JSON(http.StatusOK, result)
	}
}

// POST /users  [admin only]
func CreateUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Name     string `json:"name"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Missing username or password"}})
			return
		}
		u, err := user.Create(db.DB, req.Username, req.Name, req.Password, user.RoleUser)
		if errors.Is(err, user.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Username already exists"}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Create error"}})
			return
		}
		c.JSON(http.StatusCreated, userJSON(*u))
	}
}

// GET /users/me
func GetMeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := loadUser(c, currentUserID(c))
		if !ok {
			return
		}
		c.JSON(http.StatusOK, userJSON(u))
	}
}

type UpdateMeRequest struct {
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// PUT /users/me
func UpdateMeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateMeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		u, ok := loadUser(c, currentUserID(c))
		if !ok {
			return
		}
		if req.Name != "" {
			u.Name = req.Name
		}
		if req.Password != "" {
			pwHash, err := user.HashPassword(req.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Password hash failed"}})
				return
			}
			u.PasswordHash = pwHash
		}
		if err := db.DB.Save(&u).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Update error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated"})
	}
}

// deleteAccount purges the user's rows and revokes any live session.
func deleteAccount(c *gin.Context, rdb *redis.Client, userID string) {
	if err := db.DeleteUser(db.DB, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
		return
	}
	if rdb != nil {
		_ = auth.DeleteSession(c.Request.Context(), rdb, userID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// DELETE /users/me
func DeleteMeHandler(svc *services) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleteAccount(c, svc.rdb, currentUserID(c))
	}
}

// GET /users/:id  [admin only]
func GetUserByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := loadUser(c, c.Param("id"))
		if !ok {
			return
		}
		c.JSON(http.StatusOK, userJSON(u))
	}
}

type UpdateUserRequest struct {
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// PUT /users/:id  [admin only]
func UpdateUserByIdHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		u, ok := loadUser(c, c.Param("id"))
		if !ok {
			return
		}
		if req.Password != "" {
			pwHash, err := user.HashPassword(req.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Password hash failed"}})
				return
			}
			u.PasswordHash = pwHash
		}
		if r := user.Role(req.Role); r == user.RoleAdmin || r == user.RoleUser {
			u.Role = r
		}
		if err := db.DB.Save(&u).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Update error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User updated"})
	}
}

// DELETE /users/:id  [admin only]
func DeleteUserByIdHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleteAccount(c, rdb, c.Param("id"))
	}
}
