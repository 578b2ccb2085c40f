// internal/middleware/helpers.go
package middleware

import (
	"carmarket-service/internal/domain/auth"

	"github.com/gin-gonic/gin"
)

// MustGetViewer gets the viewer from context or panics
func MustGetViewer(c *gin.Context) *auth.Viewer {
	viewer := GetViewer(c)
	if viewer == nil {
		panic("viewer not found in context")
	}
	return viewer
}

// MustGetUserID gets user ID from context or panics
func MustGetUserID(c *gin.Context) int64 {
	userID, exists := GetUserID(c)
	if !exists {
		panic("user_id not found in context")
	}
	return userID
}
