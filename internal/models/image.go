package models

import "time"

type Image struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	ImageData string    `gorm:"type:text" json:"image_data"` // base64 encoded blob
	UserID    string    `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExposeMe  bool      `gorm:"default:false" json:"expose_me"`
	Votes     int       `gorm:"default:0" json:"votes"`
	Likes     int       `gorm:"default:0" json:"likes"`
}

type CreateImageRequest struct {
	Title     string `json:"title" binding:"required"`
	ImageData string `json:"image_data" binding:"required"`
	ExposeMe  bool   `json:"expose_me"`
}
