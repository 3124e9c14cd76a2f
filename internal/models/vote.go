package models

import "time"

// Vote types accepted by the voting endpoint.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Vote — at most one per (image, user), enforced by the composite unique index.
type Vote struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ImageID   string    `gorm:"uniqueIndex:idx_votes_image_user" json:"image_id"`
	UserID    string    `gorm:"uniqueIndex:idx_votes_image_user" json:"user_id"`
	VoteType  string    `gorm:"not null" json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}

type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required"`
}
