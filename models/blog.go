package models

import "time"

// Blog is a post owned by the user recorded at creation time.
type Blog struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Title     string       `gorm:"size:255;not null" json:"title"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	UserID    uint         `gorm:"index;not null" json:"userId"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	User      User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Likes     []Like       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Comments  []Comment    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Ratings   []BlogRating `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
