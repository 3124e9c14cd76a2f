package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/giastylez/image-board/backend/internal/models"
)

// AdminHandler serves the moderation surface. Routes using it are
// behind RequireUser + RequireAdmin.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// GetUsers lists every registered user
func (h *AdminHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("created_at ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	responses := []gin.H{}
	for _, user := range users {
		responses = append(responses, userResponse(user))
	}

	c.JSON(http.StatusOK, responses)
}

// BanUser sets the target's banned flag. Banning an already-banned
// user is a no-op success; only a missing target is a 404.
func (h *AdminHandler) BanUser(c *gin.Context) {
	h.setBanned(c, true, "User banned successfully")
}

// UnbanUser clears the target's banned flag
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	h.setBanned(c, false, "User unbanned successfully")
}

func (h *AdminHandler) setBanned(c *gin.Context, banned bool, message string) {
	userID := c.Param("id")

	var user models.User
	if err := h.db.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.db.Model(&user).Update("is_banned", banned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// GetStats returns row counts per collection. The five counts are
// separate queries, not a point-in-time snapshot; a failed query is a
// 500, never silently reported as zero.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := gin.H{}
	for _, collection := range []struct {
		name  string
		model interface{}
	}{
		{"users", &models.User{}},
		{"images", &models.Image{}},
		{"comments", &models.Comment{}},
		{"votes", &models.Vote{}},
		{"likes", &models.Like{}},
	} {
		var count int64
		if err := h.db.Model(collection.model).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		stats[collection.name] = count
	}

	c.JSON(http.StatusOK, stats)
}
