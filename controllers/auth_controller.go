package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natblog/blogapi/middleware"
	"github.com/natblog/blogapi/models"
	"github.com/natblog/blogapi/services"
	"github.com/natblog/blogapi/utils"
)

// AuthController handles registration, login and session endpoints.
type AuthController struct {
	auth      *services.AuthService
	blacklist *utils.TokenBlacklist
	cookie    SessionCookie
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(auth *services.AuthService, blacklist *utils.TokenBlacklist, cookie SessionCookie) *AuthController {
	return &AuthController{auth: auth, blacklist: blacklist, cookie: cookie}
}

type registerRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
	Bio      string  `json:"bio"`
	Role     string  `json:"role" binding:"omitempty,oneof=user admin"`
}

func (r registerRequest) input() services.RegisterInput {
	return services.RegisterInput{
		Email:    r.Email,
		Username: r.Username,
		Password: r.Password,
		Name:     r.Name,
		Bio:      r.Bio,
		Role:     r.Role,
	}
}

// publicUser is the projection returned after account creation.
func publicUser(u *models.User) gin.H {
	return gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role}
}

// Register creates a new user account.
func (a *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}

	user, err := a.auth.Register(ctx.Request.Context(), req.input())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, publicUser(user))
}

// Login authenticates and sets the session cookie.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidPayload(ctx, err)
		return
	}

	token, user, err := a.auth.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	a.cookie.set(ctx, token)
	utils.Success(ctx, gin.H{"role": user.Role})
}

// Protected echoes the caller's claims.
func (a *AuthController) Protected(ctx *gin.Context) {
	claims, ok := middleware.Claims(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}
	utils.Success(ctx, claims)
}

// Logout clears the session cookie and revokes the token until it expires.
func (a *AuthController) Logout(ctx *gin.Context) {
	if claims, ok := middleware.Claims(ctx); ok && claims.ExpiresAt != nil {
		a.blacklist.Revoke(ctx.Request.Context(), middleware.Token(ctx), claims.ExpiresAt.Time)
	}
	a.cookie.clear(ctx)
	utils.Respond(ctx, http.StatusOK, 0, "Logged out successfully", nil)
}
