package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/natblog/blogapi/models"
	"github.com/natblog/blogapi/repository"
	"github.com/natblog/blogapi/utils"
)

const (
	msgBlogNotFound    = "Blog not Found"
	msgCommentNotFound = "Comment not Found"
	msgDuplicateRecord = "Duplicate record"
)

// BlogInput is the payload for a new blog.
type BlogInput struct {
	Title   string
	Content string
}

// BlogUpdate carries optional blog changes. Nil fields are left untouched.
type BlogUpdate struct {
	Title   *string
	Content *string
}

// BlogPage is one page of blog views plus the unpaged total.
type BlogPage struct {
	Items    []BlogView `json:"items"`
	Total    int64      `json:"total"`
	Page     int        `json:"page,omitempty"`
	PageSize int        `json:"pageSize,omitempty"`
}

// BlogService orchestrates blogs, likes, comments and ratings.
type BlogService struct {
	blogs repository.BlogRepository
	cache Cache
}

// NewBlogService wires a BlogService. Single blog reads are cached in cache.
func NewBlogService(blogs repository.BlogRepository, cache Cache) *BlogService {
	return &BlogService{blogs: blogs, cache: cache}
}

func (s *BlogService) Create(ctx context.Context, caller Caller, in BlogInput) (*models.Blog, error) {
	if caller.ID == 0 {
		return nil, BadRequest("userId is required to create a blog")
	}
	blog := &models.Blog{
		Title:   utils.SanitizeText(in.Title),
		Content: utils.Sanitize(in.Content),
		UserID:  caller.ID,
	}
	if strings.TrimSpace(blog.Title) == "" || strings.TrimSpace(blog.Content) == "" {
		return nil, BadRequest("Title and content are required")
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	return blog, nil
}

// List returns views of all blogs, newest first. opts.PageSize zero disables paging.
func (s *BlogService) List(ctx context.Context, caller Caller, opts repository.ListOptions) (*BlogPage, error) {
	blogs, total, err := s.blogs.List(ctx, opts)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	items, err := s.views(ctx, blogs, caller)
	if err != nil {
		return nil, err
	}
	page := &BlogPage{Items: items, Total: total}
	if opts.PageSize > 0 {
		page.Page, page.PageSize = opts.Page, opts.PageSize
	}
	return page, nil
}

// Mine lists the blogs owned by the caller.
func (s *BlogService) Mine(ctx context.Context, caller Caller) ([]BlogView, error) {
	if !Decide(ActionReadOwnList, 0, caller) {
		return nil, BadRequest("userId is required")
	}
	blogs, _, err := s.blogs.List(ctx, repository.ListOptions{UserID: caller.ID})
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	return s.views(ctx, blogs, caller)
}

func (s *BlogService) Search(ctx context.Context, caller Caller, query string) ([]BlogView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, BadRequest("Query is required")
	}
	blogs, err := s.blogs.Search(ctx, query)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	return s.views(ctx, blogs, caller)
}

// Get returns the caller specific view of blog id.
func (s *BlogService) Get(ctx context.Context, caller Caller, id uint) (*BlogView, error) {
	var snap blogSnapshot
	if s.cache.GetJSON(ctx, blogDetailKey(id), &snap) {
		view := snap.view(caller)
		return &view, nil
	}

	blog, err := s.blogs.FindDetailed(ctx, id)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	if blog == nil {
		return nil, NotFound(msgBlogNotFound)
	}
	counts, err := s.blogs.CommentCounts(ctx, []uint{id})
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	snap = blogSnapshot{Blog: *blog, Author: blog.User, Likes: blog.Likes, Ratings: blog.Ratings, Comments: int(counts[id])}
	s.cache.SetJSON(ctx, blogDetailKey(id), snap, blogCacheTTL)
	view := snap.view(caller)
	return &view, nil
}

func (s *BlogService) Update(ctx context.Context, caller Caller, id uint, in BlogUpdate) (*models.Blog, error) {
	blog, err := s.ownedBlog(ctx, caller, id, ActionUpdate)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.Title != nil {
		title := utils.SanitizeText(*in.Title)
		if strings.TrimSpace(title) == "" {
			return nil, BadRequest("Title cannot be empty")
		}
		updates["title"] = title
	}
	if in.Content != nil {
		content := utils.Sanitize(*in.Content)
		if strings.TrimSpace(content) == "" {
			return nil, BadRequest("Content cannot be empty")
		}
		updates["content"] = content
	}
	updated, err := s.blogs.Update(ctx, blog.ID, updates)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	s.invalidate(ctx, blog.ID)
	return updated, nil
}

// Delete removes a blog and its likes, comments and ratings.
func (s *BlogService) Delete(ctx context.Context, caller Caller, id uint) error {
	blog, err := s.ownedBlog(ctx, caller, id, ActionDelete)
	if err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, blog); err != nil {
		return FromStore(err, msgDuplicateRecord)
	}
	s.invalidate(ctx, blog.ID)
	return nil
}

// ToggleLike likes the blog, or unlikes it when the caller already did. It reports the new state.
func (s *BlogService) ToggleLike(ctx context.Context, caller Caller, blogID uint) (bool, error) {
	blog, err := s.socialTarget(ctx, caller, blogID, ActionLike, "You cannot like your own blog")
	if err != nil {
		return false, err
	}

	like, err := s.blogs.FindLike(ctx, caller.ID, blog.ID)
	if err != nil {
		return false, FromStore(err, msgDuplicateRecord)
	}
	if like != nil {
		if err := s.blogs.DeleteLike(ctx, like.ID); err != nil {
			return false, FromStore(err, msgDuplicateRecord)
		}
		s.invalidate(ctx, blog.ID)
		return false, nil
	}

	err = s.blogs.CreateLike(ctx, &models.Like{UserID: caller.ID, BlogID: blog.ID})
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, FromStore(err, msgDuplicateRecord)
	}
	// a duplicate key means a concurrent request inserted the same pair first
	s.invalidate(ctx, blog.ID)
	return true, nil
}

func (s *BlogService) AddComment(ctx context.Context, caller Caller, blogID uint, content string) (*models.Comment, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	content = utils.SanitizeText(content)
	if strings.TrimSpace(content) == "" {
		return nil, BadRequest("Comment is required")
	}
	blog, err := s.socialTarget(ctx, caller, blogID, ActionComment, "You cannot comment on your own blog")
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{BlogID: blog.ID, UserID: caller.ID, Content: content}
	if err := s.blogs.CreateComment(ctx, comment); err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	s.invalidate(ctx, blog.ID)
	return comment, nil
}

// Comments lists the comments of a blog, oldest first, with author projections.
func (s *BlogService) Comments(ctx context.Context, blogID uint) ([]models.CommentWithAuthor, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	if blog == nil {
		return nil, NotFound(msgBlogNotFound)
	}
	comments, err := s.blogs.ListComments(ctx, blogID)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	out := make([]models.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		out = append(out, models.CommentWithAuthor{Comment: c, User: c.User.Summary()})
	}
	return out, nil
}

func (s *BlogService) EditComment(ctx context.Context, caller Caller, commentID uint, content string) (*models.Comment, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	content = utils.SanitizeText(content)
	if strings.TrimSpace(content) == "" {
		return nil, BadRequest("Comment is required")
	}
	comment, err := s.ownedComment(ctx, caller, commentID, ActionEditComment)
	if err != nil {
		return nil, err
	}
	updated, err := s.blogs.UpdateComment(ctx, comment.ID, content)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	return updated, nil
}

func (s *BlogService) DeleteComment(ctx context.Context, caller Caller, commentID uint) error {
	comment, err := s.ownedComment(ctx, caller, commentID, ActionDeleteComment)
	if err != nil {
		return err
	}
	if err := s.blogs.DeleteComment(ctx, comment); err != nil {
		return FromStore(err, msgDuplicateRecord)
	}
	s.invalidate(ctx, comment.BlogID)
	return nil
}

// Rate records the caller's rating for a blog, overwriting an earlier one.
func (s *BlogService) Rate(ctx context.Context, caller Caller, blogID uint, value int) (*models.BlogRating, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if value < models.MinRating || value > models.MaxRating {
		return nil, BadRequest("Rating must be between 1 and 5")
	}
	blog, err := s.socialTarget(ctx, caller, blogID, ActionRate, "You cannot rate your own blog")
	if err != nil {
		return nil, err
	}

	existing, err := s.blogs.FindRating(ctx, caller.ID, blog.ID)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	if existing == nil {
		rating := &models.BlogRating{UserID: caller.ID, BlogID: blog.ID, Rating: value}
		err = s.blogs.CreateRating(ctx, rating)
		if err == nil {
			s.invalidate(ctx, blog.ID)
			return rating, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FromStore(err, msgDuplicateRecord)
		}
		// lost the insert race, overwrite the winner's row instead
		existing, err = s.blogs.FindRating(ctx, caller.ID, blog.ID)
		if err != nil || existing == nil {
			return nil, Conflict(msgDuplicateRecord)
		}
	}

	updated, err := s.blogs.UpdateRating(ctx, existing.ID, value)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	s.invalidate(ctx, blog.ID)
	return updated, nil
}

func (s *BlogService) Stats(ctx context.Context) (repository.Stats, error) {
	stats, err := s.blogs.Stats(ctx)
	if err != nil {
		return stats, FromStore(err, msgDuplicateRecord)
	}
	return stats, nil
}

// invalidate drops every cached entry derived from blog id.
func (s *BlogService) invalidate(ctx context.Context, id uint) {
	s.cache.InvalidateByPrefix(ctx, blogKeyPrefix(id))
}

// ownedBlog runs identity, existence and ownership checks for blog mutations.
func (s *BlogService) ownedBlog(ctx context.Context, caller Caller, id uint, action Action) (*models.Blog, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	if blog == nil {
		return nil, NotFound(msgBlogNotFound)
	}
	if !Decide(action, blog.UserID, caller) {
		return nil, Forbidden("You are not the owner of the blog")
	}
	return blog, nil
}

func (s *BlogService) ownedComment(ctx context.Context, caller Caller, id uint, action Action) (*models.Comment, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	comment, err := s.blogs.FindComment(ctx, id)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	if comment == nil {
		return nil, NotFound(msgCommentNotFound)
	}
	if !Decide(action, comment.UserID, caller) {
		return nil, Forbidden("You are not the owner of the comment")
	}
	return comment, nil
}

// socialTarget loads the blog for like, comment and rate, rejecting self-actions.
func (s *BlogService) socialTarget(ctx context.Context, caller Caller, id uint, action Action, selfMsg string) (*models.Blog, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	if blog == nil {
		return nil, NotFound(msgBlogNotFound)
	}
	if !Decide(action, blog.UserID, caller) {
		return nil, Forbidden(selfMsg)
	}
	return blog, nil
}

func (s *BlogService) views(ctx context.Context, blogs []models.Blog, caller Caller) ([]BlogView, error) {
	ids := make([]uint, 0, len(blogs))
	for _, b := range blogs {
		ids = append(ids, b.ID)
	}
	counts, err := s.blogs.CommentCounts(ctx, ids)
	if err != nil {
		return nil, FromStore(err, msgDuplicateRecord)
	}
	views := make([]BlogView, 0, len(blogs))
	for _, b := range blogs {
		views = append(views, BuildView(b, b.Ratings, b.Likes, int(counts[b.ID]), caller))
	}
	return views, nil
}
