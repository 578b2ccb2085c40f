// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"carmarket-service/internal/domain/auth"
	xerrors "carmarket-service/internal/pkg/errors"
	"carmarket-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	viewerKey = "viewer"
	userIDKey = "user_id"
)

// TokenValidator resolves a bearer token into the caller's identity.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*auth.Viewer, error)
}

type AuthMiddleware struct {
	authService TokenValidator
}

func NewAuthMiddleware(authService TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Auth is the base authentication middleware that validates JWT tokens
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		viewer, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, xerrors.ErrUnauthorized) {
				response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
				return
			}
			response.FromError(c, "failed to validate token", err)
			return
		}

		setViewer(c, viewer)
		c.Next()
	}
}

// OptionalAuth middleware that doesn't abort if no token is provided
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		viewer, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			// Don't abort, just continue as anonymous
			c.Next()
			return
		}

		setViewer(c, viewer)
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers.
// MUST be used after Auth() middleware
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetViewer(c).IsAdmin() {
			response.Error(c, http.StatusForbidden, "insufficient permissions", xerrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// AdminOnly returns middlewares for admin-only routes (Auth + RequireAdmin)
func (m *AuthMiddleware) AdminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireAdmin(),
	}
}

func setViewer(c *gin.Context, viewer *auth.Viewer) {
	c.Set(viewerKey, viewer)
	c.Set(userIDKey, viewer.UserID)
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	// Fallback to query param (use with caution in production)
	return c.Query("token")
}

// GetViewer returns the caller's identity, or nil for anonymous requests.
func GetViewer(c *gin.Context) *auth.Viewer {
	v, exists := c.Get(viewerKey)
	if !exists {
		return nil
	}
	viewer, _ := v.(*auth.Viewer)
	return viewer
}

// Helper function to get user ID from context
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int64)
	return id, ok
}
