package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natblog/blogapi/middleware"
	"github.com/natblog/blogapi/repository"
	"github.com/natblog/blogapi/services"
	"github.com/natblog/blogapi/utils"
)

// BlogController exposes blogs and their likes, comments and ratings.
type BlogController struct {
	blogs *services.BlogService
}

// NewBlogController creates a new BlogController instance.
func NewBlogController(blogs *services.BlogService) *BlogController {
	return &BlogController{blogs: blogs}
}

func (b *BlogController) Create(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}
	blog, err := b.blogs.Create(ctx.Request.Context(), middleware.Caller(ctx), services.BlogInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, blog)
}

// List returns every blog, or one page of them when page or page_size is given.
func (b *BlogController) List(ctx *gin.Context) {
	page, pageSize := pagination(ctx)
	result, err := b.blogs.List(ctx.Request.Context(), middleware.Caller(ctx), repository.ListOptions{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, result)
}

func (b *BlogController) Search(ctx *gin.Context) {
	views, err := b.blogs.Search(ctx.Request.Context(), middleware.Caller(ctx), ctx.Query("query"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, views)
}

// Mine lists the caller's own blogs.
func (b *BlogController) Mine(ctx *gin.Context) {
	views, err := b.blogs.Mine(ctx.Request.Context(), middleware.Caller(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, views)
}

func (b *BlogController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	view, err := b.blogs.Get(ctx.Request.Context(), middleware.Caller(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, view)
}

func (b *BlogController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}
	blog, err := b.blogs.Update(ctx.Request.Context(), middleware.Caller(ctx), id, services.BlogUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, blog)
}

func (b *BlogController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := b.blogs.Delete(ctx.Request.Context(), middleware.Caller(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	utils.Respond(ctx, http.StatusOK, 0, "Blog deleted", gin.H{"id": id})
}

// Like toggles the caller's like on a blog.
func (b *BlogController) Like(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	liked, err := b.blogs.ToggleLike(ctx.Request.Context(), middleware.Caller(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	msg := "Blog unliked"
	if liked {
		msg = "Blog liked"
	}
	utils.Respond(ctx, http.StatusOK, 0, msg, gin.H{"liked": liked})
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// Comment adds a comment to the blog :id.
func (b *BlogController) Comment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}
	comment, err := b.blogs.AddComment(ctx.Request.Context(), middleware.Caller(ctx), id, req.Comment)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, comment)
}

// Comments lists the comments of the blog :id.
func (b *BlogController) Comments(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	comments, err := b.blogs.Comments(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, comments)
}

// EditComment rewrites the comment :id.
func (b *BlogController) EditComment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}
	comment, err := b.blogs.EditComment(ctx.Request.Context(), middleware.Caller(ctx), id, req.Comment)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, comment)
}

// DeleteComment removes the comment :id.
func (b *BlogController) DeleteComment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := b.blogs.DeleteComment(ctx.Request.Context(), middleware.Caller(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	utils.Respond(ctx, http.StatusOK, 0, "Comment deleted", gin.H{"id": id})
}

// Rate sets the caller's rating for the blog :id.
func (b *BlogController) Rate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Rating *int `json:"rating" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}
	rating, err := b.blogs.Rate(ctx.Request.Context(), middleware.Caller(ctx), id, *req.Rating)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, rating)
}
