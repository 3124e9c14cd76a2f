package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/giastylez/image-board/backend/internal/middleware"
	"github.com/giastylez/image-board/backend/internal/models"
)

type ImageHandler struct {
	db *gorm.DB
}

func NewImageHandler(db *gorm.DB) *ImageHandler {
	return &ImageHandler{db: db}
}

// ownerEmail looks up the owner's current email; nil when the owner
// record is gone (images outlive their uploader).
func (h *ImageHandler) ownerEmail(userID string) interface{} {
	var user models.User
	if err := h.db.Select("email").Where("id = ?", userID).First(&user).Error; err != nil {
		return nil
	}
	return user.Email
}

func (h *ImageHandler) imageResponse(image models.Image, userEmail interface{}) gin.H {
	return gin.H{
		"id":         image.ID,
		"title":      image.Title,
		"image_data": image.ImageData,
		"user_id":    image.UserID,
		"created_at": image.CreatedAt,
		"expose_me":  image.ExposeMe,
		"votes":      image.Votes,
		"likes":      image.Likes,
		"user_email": userEmail,
	}
}

// CreateImage uploads a new image (PROTECTED)
func (h *ImageHandler) CreateImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreateImageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image := models.Image{
		ID:        uuid.NewString(),
		Title:     input.Title,
		ImageData: input.ImageData,
		UserID:    user.ID,
		ExposeMe:  input.ExposeMe,
	}

	if err := h.db.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create image"})
		return
	}

	c.JSON(http.StatusCreated, h.imageResponse(image, user.Email))
}

// GetImages returns the paginated image list, exposed images first,
// then by votes, then newest first.
func (h *ImageHandler) GetImages(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skip value"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit value"})
		return
	}

	var images []models.Image
	if err := h.db.
		Order("expose_me DESC, votes DESC, created_at DESC").
		Offset(skip).Limit(limit).
		Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch images"})
		return
	}

	// Owner email joined per row; fine at this result-set size.
	responses := []gin.H{}
	for _, image := range images {
		responses = append(responses, h.imageResponse(image, h.ownerEmail(image.UserID)))
	}

	c.JSON(http.StatusOK, responses)
}

// GetImage returns a single image by ID
func (h *ImageHandler) GetImage(c *gin.Context) {
	var image models.Image
	if err := h.db.Where("id = ?", c.Param("id")).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	c.JSON(http.StatusOK, h.imageResponse(image, h.ownerEmail(image.UserID)))
}

// DeleteImage removes an image and everything referencing it (owner or
// admin only). The cascade is sequential, not transactional: a crash
// mid-way can orphan children, accepted at this scale.
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	imageID := c.Param("id")
	var image models.Image
	if err := h.db.Where("id = ?", imageID).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if image.UserID != user.ID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this image"})
		return
	}

	// Children go first; a failed child delete aborts before the image
	// row is touched, so a driver error never reports success.
	if err := h.db.Where("image_id = ?", imageID).Delete(&models.Comment{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}
	if err := h.db.Where("image_id = ?", imageID).Delete(&models.Vote{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}
	if err := h.db.Where("image_id = ?", imageID).Delete(&models.Like{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	if err := h.db.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

// VoteImage applies one step of the per-user vote state machine:
// same type again removes the vote, the opposite type flips it (±2),
// no prior vote creates one (±1). The vote record and the counter move
// in one transaction so they can never drift apart.
func (h *ImageHandler) VoteImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.VoteType != models.VoteUp && input.VoteType != models.VoteDown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote type"})
		return
	}

	imageID := c.Param("id")
	var image models.Image
	if err := h.db.Where("id = ?", imageID).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("image_id = ? AND user_id = ?", imageID, user.ID).First(&existing).Error

		var delta int
		switch {
		case err == nil && existing.VoteType == input.VoteType:
			// Toggle off
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			delta = -1
			if input.VoteType == models.VoteDown {
				delta = 1
			}
		case err == nil:
			// Flip
			if err := tx.Model(&existing).Update("vote_type", input.VoteType).Error; err != nil {
				return err
			}
			delta = 2
			if input.VoteType == models.VoteDown {
				delta = -2
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{
				ID:       uuid.NewString(),
				ImageID:  imageID,
				UserID:   user.ID,
				VoteType: input.VoteType,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			delta = 1
			if input.VoteType == models.VoteDown {
				delta = -1
			}
		default:
			return err
		}

		return tx.Model(&models.Image{}).
			Where("id = ?", imageID).
			UpdateColumn("votes", gorm.Expr("votes + ?", delta)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vote updated successfully"})
}

// LikeImage toggles the caller's like; record and counter share a transaction.
func (h *ImageHandler) LikeImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	imageID := c.Param("id")
	var image models.Image
	if err := h.db.Where("id = ?", imageID).First(&image).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	liked := false
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("image_id = ? AND user_id = ?", imageID, user.ID).First(&existing).Error

		var delta int
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			delta = -1
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.Like{
				ID:      uuid.NewString(),
				ImageID: imageID,
				UserID:  user.ID,
			}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			delta = 1
			liked = true
		default:
			return err
		}

		return tx.Model(&models.Image{}).
			Where("id = ?", imageID).
			UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like image"})
		return
	}

	if liked {
		c.JSON(http.StatusOK, gin.H{"message": "Image liked"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image unliked"})
}
