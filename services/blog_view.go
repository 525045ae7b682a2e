package services

import (
	"time"

	"github.com/natblog/blogapi/models"
)

// BlogCounts are the relation counts reported with a blog view.
type BlogCounts struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Ratings  int `json:"ratings"`
}

// BlogView is the flat read model of a blog as seen by one caller.
type BlogView struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	UserID        uint               `json:"userId"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	User          models.UserSummary `json:"user"`
	Count         BlogCounts         `json:"_count"`
	LikesCount    int                `json:"likesCount"`
	CommentsCount int                `json:"commentsCount"`
	RatingsCount  int                `json:"ratingsCount"`
	TotalRating   int                `json:"totalRating"`
	AverageRating float64            `json:"averageRating"`
	IsLikedByMe   bool               `json:"isLikedByMe"`
}

// BuildView derives the caller specific view of blog from its already loaded ratings and likes.
// Admins and the blog owner always see IsLikedByMe=false.
func BuildView(blog models.Blog, ratings []models.BlogRating, likes []models.Like, commentsCount int, caller Caller) BlogView {
	total := 0
	for _, r := range ratings {
		total += r.Rating
	}
	average := 0.0
	if len(ratings) > 0 {
		average = float64(total) / float64(len(ratings))
	}

	liked := false
	if caller.ID != 0 && !caller.IsAdmin() && blog.UserID != caller.ID {
		for _, l := range likes {
			if l.UserID == caller.ID {
				liked = true
				break
			}
		}
	}

	counts := BlogCounts{Likes: len(likes), Comments: commentsCount, Ratings: len(ratings)}
	return BlogView{
		ID:            blog.ID,
		Title:         blog.Title,
		Content:       blog.Content,
		UserID:        blog.UserID,
		CreatedAt:     blog.CreatedAt,
		UpdatedAt:     blog.UpdatedAt,
		User:          blog.User.Summary(),
		Count:         counts,
		LikesCount:    counts.Likes,
		CommentsCount: counts.Comments,
		RatingsCount:  counts.Ratings,
		TotalRating:   total,
		AverageRating: average,
		IsLikedByMe:   liked,
	}
}
