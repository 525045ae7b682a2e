package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/natblog/blogapi/services"
	"github.com/natblog/blogapi/utils"
)

const (
	// CookieName is the session cookie carrying the access token.
	CookieName = "access_token"
	// ContextClaimsKey stores the validated *utils.Claims inside Gin context.
	ContextClaimsKey = "claims"
	// ContextTokenKey stores the raw token string.
	ContextTokenKey = "token"
)

// TokenParser validates a raw token.
type TokenParser interface {
	Parse(token string) (*utils.Claims, error)
}

// RevocationChecker reports tokens revoked before expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) bool
}

// AuthRequired ensures the request carries a valid token, read from the session cookie
// or an Authorization bearer header.
func AuthRequired(parser TokenParser, revoked RevocationChecker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, code, msg := extractToken(ctx)
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, code, msg)
			ctx.Abort()
			return
		}

		if revoked != nil && revoked.IsRevoked(ctx.Request.Context(), tokenString) {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := parser.Parse(tokenString)
		if err != nil || claims.CallerID() == 0 {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextClaimsKey, claims)
		ctx.Set(ContextTokenKey, tokenString)
		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) (string, int, string) {
	if cookie, err := ctx.Cookie(CookieName); err == nil && cookie != "" {
		return cookie, 0, ""
	}

	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return "", 40101, "authorization missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", 40102, "invalid authorization header format"
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", 40103, "empty bearer token"
	}
	return tokenString, 0, ""
}

// Claims returns the claims stored by AuthRequired.
func Claims(ctx *gin.Context) (*utils.Claims, bool) {
	v, ok := ctx.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

// Caller returns the authenticated identity, or the zero Caller outside AuthRequired.
func Caller(ctx *gin.Context) services.Caller {
	claims, ok := Claims(ctx)
	if !ok {
		return services.Caller{}
	}
	return services.Caller{ID: claims.CallerID(), Role: claims.Role}
}

// Token returns the raw token accepted by AuthRequired.
func Token(ctx *gin.Context) string {
	return ctx.GetString(ContextTokenKey)
}
