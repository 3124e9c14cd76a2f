package handlers

import (
	"gorm.io/gorm"

	"github.com/giastylez/image-board/backend/internal/auth"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Image   *ImageHandler
	Comment *CommentHandler
	Admin   *AdminHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, tokens *auth.TokenService) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(db, tokens),
		Image:   NewImageHandler(db),
		Comment: NewCommentHandler(db),
		Admin:   NewAdminHandler(db),
	}
}
