package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giastylez/image-board/backend/internal/middleware"
	"github.com/giastylez/image-board/backend/internal/models"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

func (h *CommentHandler) commentResponse(comment models.Comment, userEmail interface{}) gin.H {
	return gin.H{
		"id":         comment.ID,
		"image_id":   comment.ImageID,
		"user_id":    comment.UserID,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
		"user_email": userEmail,
	}
}

// CreateComment adds a comment to an image (PROTECTED)
func (h *CommentHandler) CreateComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageID := c.Param("id")
	var image models.Image
	if err := h.db.Where("id = ?", imageID).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	comment := models.Comment{
		ID:      uuid.NewString(),
		ImageID: imageID,
		UserID:  user.ID,
		Content: input.Content,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, h.commentResponse(comment, user.Email))
}

// GetComments returns an image's comments, oldest first
func (h *CommentHandler) GetComments(c *gin.Context) {
	var comments []models.Comment
	if err := h.db.
		Where("image_id = ?", c.Param("id")).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	responses := []gin.H{}
	for _, comment := range comments {
		responses = append(responses, h.commentResponse(comment, h.commenterEmail(comment.UserID)))
	}

	c.JSON(http.StatusOK, responses)
}

func (h *CommentHandler) commenterEmail(userID string) interface{} {
	var user models.User
	if err := h.db.Select("email").Where("id = ?", userID).First(&user).Error; err != nil {
		return nil
	}
	return user.Email
}

// DeleteComment deletes a comment (owner or admin only)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var comment models.Comment
	if err := h.db.Where("id = ?", c.Param("id")).First(&comment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.UserID != user.ID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this comment"})
		return
	}

	if err := h.db.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
