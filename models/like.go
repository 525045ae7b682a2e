package models

import "time"

// Like marks a blog as liked by a user. The (UserID, BlogID) pair is unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_blog" json:"userId"`
	BlogID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_blog;index" json:"blogId"`
	CreatedAt time.Time `json:"createdAt"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
