package services

import (
	"context"
	"fmt"
	"time"

	"github.com/natblog/blogapi/models"
)

// Cache is the read-through cache used by the services. *utils.Cache satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, v interface{}) bool
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	InvalidateByPrefix(ctx context.Context, prefix string)
}

const (
	blogCachePrefix = "blog:"
	blogCacheTTL    = 5 * time.Minute
)

// blogKeyPrefix covers every cached entry derived from blog id.
func blogKeyPrefix(id uint) string {
	return fmt.Sprintf("%s%d:", blogCachePrefix, id)
}

func blogDetailKey(id uint) string {
	return blogKeyPrefix(id) + "detail"
}

// blogSnapshot is the caller independent state behind a blog view.
type blogSnapshot struct {
	Blog     models.Blog         `json:"blog"`
	Author   models.User         `json:"author"`
	Likes    []models.Like       `json:"likes"`
	Ratings  []models.BlogRating `json:"ratings"`
	Comments int                 `json:"comments"`
}

func (s blogSnapshot) view(caller Caller) BlogView {
	blog := s.Blog
	blog.User = s.Author
	return BuildView(blog, s.Ratings, s.Likes, s.Comments, caller)
}
