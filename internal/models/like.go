package models

import "time"

// Like — at most one per (image, user); the like endpoint toggles it.
type Like struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ImageID   string    `gorm:"uniqueIndex:idx_likes_image_user" json:"image_id"`
	UserID    string    `gorm:"uniqueIndex:idx_likes_image_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
