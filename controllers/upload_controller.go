package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natblog/blogapi/middleware"
	"github.com/natblog/blogapi/services"
	"github.com/natblog/blogapi/utils"
)

// UploadController accepts image uploads.
type UploadController struct {
	uploads *services.UploadService
}

// NewUploadController creates a new UploadController instance.
func NewUploadController(uploads *services.UploadService) *UploadController {
	return &UploadController{uploads: uploads}
}

// Upload stores the multipart field "file" and returns its URL.
func (u *UploadController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "no file uploaded")
		return
	}
	if header.Size > u.uploads.MaxBytes() {
		utils.Error(ctx, http.StatusBadRequest, 40032, fmt.Sprintf("file size exceeds %dMB", u.uploads.MaxBytes()>>20))
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40031, "failed to read file")
		return
	}
	defer file.Close()

	url, err := u.uploads.UploadImage(ctx.Request.Context(), middleware.Caller(ctx), file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, gin.H{"url": url})
}
