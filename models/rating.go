package models

import "time"

// Rating bounds accepted for BlogRating.Rating.
const (
	MinRating = 1
	MaxRating = 5
)

// BlogRating is a user's 1..5 score for a blog, one row per (UserID, BlogID).
type BlogRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_user_blog" json:"userId"`
	BlogID    uint      `gorm:"not null;uniqueIndex:idx_ratings_user_blog;index" json:"blogId"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
