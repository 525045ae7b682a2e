package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/natblog/blogapi/models"
)

// ListOptions narrows and pages a blog listing. Zero values mean "all".
type ListOptions struct {
	UserID   uint
	Page     int
	PageSize int
}

// Stats holds aggregate row counts.
type Stats struct {
	Users    int64 `json:"userCount"`
	Blogs    int64 `json:"blogCount"`
	Comments int64 `json:"commentCount"`
	Likes    int64 `json:"likeCount"`
	Ratings  int64 `json:"ratingCount"`
}

// BlogRepository persists blogs and their likes, comments and ratings.
// Find* lookups return (nil, nil) when no row matches.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	FindByID(ctx context.Context, id uint) (*models.Blog, error)
	// FindDetailed loads the blog with its author, likes and ratings.
	FindDetailed(ctx context.Context, id uint) (*models.Blog, error)
	// List returns blogs newest first with author, likes and ratings loaded, plus the unpaged total.
	List(ctx context.Context, opts ListOptions) ([]models.Blog, int64, error)
	// Search matches title or author name case-insensitively; relations are loaded as in List.
	Search(ctx context.Context, query string) ([]models.Blog, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Blog, error)
	Delete(ctx context.Context, blog *models.Blog) error
	CommentCounts(ctx context.Context, blogIDs []uint) (map[uint]int64, error)

	FindLike(ctx context.Context, userID, blogID uint) (*models.Like, error)
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, id uint) error

	CreateComment(ctx context.Context, comment *models.Comment) error
	FindComment(ctx context.Context, id uint) (*models.Comment, error)
	ListComments(ctx context.Context, blogID uint) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id uint, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, comment *models.Comment) error

	FindRating(ctx context.Context, userID, blogID uint) (*models.BlogRating, error)
	CreateRating(ctx context.Context, rating *models.BlogRating) error
	UpdateRating(ctx context.Context, id uint, value int) (*models.BlogRating, error)

	Stats(ctx context.Context) (Stats, error)
}

type blogRepo struct {
	db *gorm.DB
}

// NewBlogRepository creates a GORM backed BlogRepository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepo{db: db}
}

func (r *blogRepo) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Likes").
		Preload("Ratings")
}

func (r *blogRepo) Create(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(blog).Error
}

func (r *blogRepo) FindByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return &blog, nil
}

func (r *blogRepo) FindDetailed(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.detailed(ctx).First(&blog, id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return &blog, nil
}

func (r *blogRepo) List(ctx context.Context, opts ListOptions) ([]models.Blog, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Blog{})
	if opts.UserID != 0 {
		base = base.Where("user_id = ?", opts.UserID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.Session(&gorm.Session{}).
		Preload("User").
		Preload("Likes").
		Preload("Ratings").
		Order("created_at DESC").
		Order("id DESC")
	if opts.PageSize > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * opts.PageSize).Limit(opts.PageSize)
	}

	var blogs []models.Blog
	if err := q.Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// likeEscaper quotes LIKE wildcards with '!', which needs no special handling in any driver's string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *blogRepo) Search(ctx context.Context, query string) ([]models.Blog, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	var blogs []models.Blog
	err := r.detailed(ctx).
		Select("blogs.*").
		Joins("LEFT JOIN users ON users.id = blogs.user_id").
		Where("LOWER(blogs.title) LIKE ? ESCAPE '!' OR LOWER(users.name) LIKE ? ESCAPE '!'", pattern, pattern).
		Order("blogs.id DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) (*models.Blog, error) {
	db := r.db.WithContext(ctx)
	if len(updates) > 0 {
		if err := db.Model(&models.Blog{ID: id}).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	var blog models.Blog
	if err := db.First(&blog, id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// Delete removes the blog together with its likes, comments and ratings in one transaction.
func (r *blogRepo) Delete(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Select("Likes", "Comments", "Ratings").Delete(blog).Error
}

func (r *blogRepo) CommentCounts(ctx context.Context, blogIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(blogIDs))
	if len(blogIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		BlogID uint
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("blog_id, COUNT(*) AS total").
		Where("blog_id IN ?", blogIDs).
		Group("blog_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.BlogID] = row.Total
	}
	return counts, nil
}

func (r *blogRepo) FindLike(ctx context.Context, userID, blogID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).Where("user_id = ? AND blog_id = ?", userID, blogID).First(&like).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &like, nil
}

func (r *blogRepo) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error
}

func (r *blogRepo) DeleteLike(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Like{}, id).Error
}

func (r *blogRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *blogRepo) FindComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return &comment, nil
}

func (r *blogRepo) ListComments(ctx context.Context, blogID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("blog_id = ?", blogID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *blogRepo) UpdateComment(ctx context.Context, id uint, content string) (*models.Comment, error) {
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Comment{ID: id}).Update("content", content).Error; err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *blogRepo) DeleteComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Delete(comment).Error
}

func (r *blogRepo) FindRating(ctx context.Context, userID, blogID uint) (*models.BlogRating, error) {
	var rating models.BlogRating
	err := r.db.WithContext(ctx).Where("user_id = ? AND blog_id = ?", userID, blogID).First(&rating).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &rating, nil
}

func (r *blogRepo) CreateRating(ctx context.Context, rating *models.BlogRating) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rating).Error
}

func (r *blogRepo) UpdateRating(ctx context.Context, id uint, value int) (*models.BlogRating, error) {
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.BlogRating{ID: id}).Update("rating", value).Error; err != nil {
		return nil, err
	}
	var rating models.BlogRating
	if err := db.First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *blogRepo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	db := r.db.WithContext(ctx)
	for _, c := range []struct {
		model interface{}
		dst   *int64
	}{
		{&models.User{}, &s.Users},
		{&models.Blog{}, &s.Blogs},
		{&models.Comment{}, &s.Comments},
		{&models.Like{}, &s.Likes},
		{&models.BlogRating{}, &s.Ratings},
	} {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return s, err
		}
	}
	return s, nil
}
