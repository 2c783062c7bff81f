package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/profrate/profrate/internal/pkg/apperrors"
	"github.com/profrate/profrate/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers
const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
)

// AuthMiddleware validates bearer tokens on protected routes
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// abortWithAuthError maps the failure through the shared error scheme and
// stops the handler chain.
func abortWithAuthError(c *gin.Context, err error) {
	HandleAPIError(c, err)
	c.Abort()
}

// JWTAuth aborts with 401 unless the request carries a valid access token.
// On success the user's identity is stored on the context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithAuthError(c, apperrors.ErrTokenNotFound)
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortWithAuthError(c, apperrors.ErrTokenInvalid)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithAuthError(c, apperrors.ErrTokenExpired)
				return
			}
			abortWithAuthError(c, apperrors.ErrTokenInvalid)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// CurrentUserID reads the authenticated user's ID from the context
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// CurrentUsername reads the authenticated username from the context
func CurrentUsername(c *gin.Context) (string, bool) {
	value, ok := c.Get(ContextUsernameKey)
	if !ok {
		return "", false
	}
	username, ok := value.(string)
	return username, ok
}
