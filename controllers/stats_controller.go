package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/natblog/blogapi/services"
	"github.com/natblog/blogapi/utils"
)

// StatsController provides platform statistics such as row counts.
type StatsController struct {
	blogs *services.BlogService
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(blogs *services.BlogService) *StatsController {
	return &StatsController{blogs: blogs}
}

// GetStats returns aggregate statistics for the platform.
func (s *StatsController) GetStats(ctx *gin.Context) {
	stats, err := s.blogs.Stats(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, stats)
}
