package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natblog/blogapi/middleware"
	"github.com/natblog/blogapi/services"
	"github.com/natblog/blogapi/utils"
)

// UserController exposes account management.
type UserController struct {
	users  *services.UserService
	cookie SessionCookie
}

// NewUserController creates a new UserController instance.
func NewUserController(users *services.UserService, cookie SessionCookie) *UserController {
	return &UserController{users: users, cookie: cookie}
}

// Create lets an admin create an account with any role.
func (u *UserController) Create(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}
	user, err := u.users.Create(ctx.Request.Context(), middleware.Caller(ctx), req.input())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, publicUser(user))
}

func (u *UserController) List(ctx *gin.Context) {
	users, err := u.users.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, users)
}

func (u *UserController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	user, err := u.users.Get(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, user)
}

// Update changes a profile. Role cannot be changed here.
func (u *UserController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Email    *string `json:"email" binding:"omitempty,email"`
		Username *string `json:"username" binding:"omitempty,min=1"`
		Password *string `json:"password" binding:"omitempty,min=8"`
		Name     *string `json:"name"`
		Bio      *string `json:"bio"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}

	user, err := u.users.Update(ctx.Request.Context(), middleware.Caller(ctx), id, services.UserUpdate{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Bio:      req.Bio,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, user)
}

// Delete removes an account; a user deleting themself also loses the session cookie.
func (u *UserController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	caller := middleware.Caller(ctx)
	if err := u.users.Remove(ctx.Request.Context(), caller, id); err != nil {
		respondError(ctx, err)
		return
	}
	if caller.ID == id {
		u.cookie.clear(ctx)
	}
	utils.Respond(ctx, http.StatusOK, 0, "User deleted", gin.H{"id": id})
}
