package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/aiblog/config"
	"github.com/cppla/aiblog/utils"
)

const (
	// ContextUserIDKey is the key used to store authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username inside Gin context.
	ContextUsernameKey = "username"
	// ContextTokenKey keeps the raw bearer token for logout.
	ContextTokenKey = "token"
)

// AuthRequired ensures the request is authenticated via JWT.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, token, code, msg := authenticate(ctx.GetHeader("Authorization"))
		if claims == nil {
			utils.Error(ctx, http.StatusUnauthorized, code, msg)
			ctx.Abort()
			return
		}
		setIdentity(ctx, claims, token)
		ctx.Next()
	}
}

// OptionalAuth attaches the identity of a valid bearer token and otherwise lets the
// request through as anonymous. Missing, malformed, revoked and expired tokens all
// count as anonymous.
func OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if claims, token, _, _ := authenticate(ctx.GetHeader("Authorization")); claims != nil {
			setIdentity(ctx, claims, token)
		}
		ctx.Next()
	}
}

// AdminRequired rejects authenticated users not listed in AdminUsernames.
// It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !IsAdmin(ctx) {
			utils.Error(ctx, http.StatusForbidden, 40301, "admin privileges required")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// UserID returns the authenticated user id, if any.
func UserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id != 0
}

// IsAdmin reports whether the authenticated username is configured as an admin.
func IsAdmin(ctx *gin.Context) bool {
	return IsAdminUsername(ctx.GetString(ContextUsernameKey))
}

// IsAdminUsername matches username against AdminUsernames, ignoring case.
func IsAdminUsername(username string) bool {
	uname := strings.TrimSpace(username)
	if uname == "" {
		return false
	}
	for _, u := range config.Get().AdminUsernames {
		if strings.EqualFold(strings.TrimSpace(u), uname) {
			return true
		}
	}
	return false
}

func setIdentity(ctx *gin.Context, claims *utils.Claims, token string) {
	ctx.Set(ContextUserIDKey, claims.UserID)
	ctx.Set(ContextUsernameKey, claims.Username)
	ctx.Set(ContextTokenKey, token)
}

func authenticate(authHeader string) (*utils.Claims, string, int, string) {
	if authHeader == "" {
		return nil, "", 40101, "authorization header missing"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "", 40102, "invalid authorization header format"
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, "", 40103, "empty bearer token"
	}

	if utils.IsTokenBlacklisted(tokenString) {
		return nil, "", 40104, "token revoked"
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return nil, "", 40105, "invalid token"
	}
	return claims, tokenString, 0, ""
}
