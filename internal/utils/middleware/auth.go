package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leaguehub/server/internal/shared/auth"
	"github.com/leaguehub/server/internal/shared/response"
	"github.com/leaguehub/server/internal/utils/requestctx"
)

const (
	// AuthorizationHeader is the header key for authorization.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens.
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID.
	UserIDKey = "user_id"
)

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Auth returns a middleware that validates JWT tokens and sets user_id in the context.
// If optional is true, the middleware will not abort on missing/invalid tokens.
func Auth(validator TokenValidator, optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			if !optional {
				response.Unauthorized(c, "authorization header required")
				return
			}
			c.Next()
			return
		}

		claims, err := validator.Validate(token)
		if err != nil {
			if !optional {
				response.Unauthorized(c, "invalid or expired token")
				return
			}
			c.Next()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(requestctx.WithActorID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RequireAuth returns a middleware that requires a valid JWT token.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return Auth(validator, false)
}

// OptionalAuth returns a middleware that optionally validates JWT tokens.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return Auth(validator, true)
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
}

// GetUserID returns the user ID from context.
// Returns uuid.Nil if not found.
func GetUserID(c *gin.Context) uuid.UUID {
	if val, exists := c.Get(UserIDKey); exists {
		if userID, ok := val.(uuid.UUID); ok {
			return userID
		}
	}
	return uuid.Nil
}
