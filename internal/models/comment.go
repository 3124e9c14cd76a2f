package models

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ImageID   string    `gorm:"index" json:"image_id"`
	UserID    string    `json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}
