package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/natblog/blogapi/middleware"
	"github.com/natblog/blogapi/services"
	"github.com/natblog/blogapi/utils"
)

// SessionCookie describes how the access token cookie is written.
type SessionCookie struct {
	MaxAge time.Duration
	Secure bool
}

func (c SessionCookie) set(ctx *gin.Context, token string) {
	c.write(ctx, token, int(c.MaxAge.Seconds()))
}

func (c SessionCookie) clear(ctx *gin.Context) {
	c.write(ctx, "", -1)
}

func (c SessionCookie) write(ctx *gin.Context, value string, maxAge int) {
	if c.Secure {
		ctx.SetSameSite(http.SameSiteNoneMode)
	} else {
		ctx.SetSameSite(http.SameSiteLaxMode)
	}
	ctx.SetCookie(middleware.CookieName, value, maxAge, "/", "", c.Secure, true)
}

// respondError maps a service error kind onto the HTTP status and envelope code.
func respondError(ctx *gin.Context, err error) {
	switch services.KindOf(err) {
	case services.KindBadRequest:
		utils.Error(ctx, http.StatusBadRequest, 40000, err.Error())
	case services.KindConflict:
		utils.Error(ctx, http.StatusConflict, 40900, err.Error())
	case services.KindNotFound:
		utils.Error(ctx, http.StatusNotFound, 40400, err.Error())
	case services.KindForbidden:
		utils.Error(ctx, http.StatusForbidden, 40300, err.Error())
	case services.KindUnauthorized:
		utils.Error(ctx, http.StatusUnauthorized, 40100, err.Error())
	default:
		utils.Sugar.Errorw("request failed", "path", ctx.FullPath(), "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}

func invalidPayload(ctx *gin.Context, err error) {
	utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload: "+err.Error())
}

// parseID reads a positive numeric path parameter.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// pagination reads page and page_size. Paging applies only when either is present:
// page defaults to 1, and page_size values outside 1..100 use 10.
func pagination(ctx *gin.Context) (page, pageSize int) {
	rawPage := strings.TrimSpace(ctx.Query("page"))
	rawSize := strings.TrimSpace(ctx.Query("page_size"))
	if rawPage == "" && rawSize == "" {
		return 0, 0
	}

	page, pageSize = 1, 10
	if n, err := strconv.Atoi(rawPage); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(rawSize); err == nil && n > 0 && n <= 100 {
		pageSize = n
	}
	return page, pageSize
}
