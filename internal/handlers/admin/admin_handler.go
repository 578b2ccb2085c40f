// internal/handlers/admin/admin_handler.go
package admin

import (
	"context"
	"net/http"
	"strconv"

	"carmarket-service/internal/domain/auth"
	"carmarket-service/internal/domain/catalog"
	"carmarket-service/internal/domain/user"
	"carmarket-service/internal/middleware"
	xerrors "carmarket-service/internal/pkg/errors"
	"carmarket-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Users interface {
	SearchByEmail(ctx context.Context, fragment string) ([]user.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type Listings interface {
	BulkSetActiveForOwner(ctx context.Context, actor *auth.Viewer, ownerID int64, active bool) (int64, error)
}

// Latch exposes the catalog fallback state.
type Latch interface {
	Status() catalog.FallbackStatus
	ResetFallback()
}

type AdminHandler struct {
	users    Users
	listings Listings
	latch    Latch
	logger   *zap.Logger
}

func NewAdminHandler(users Users, listings Listings, latch Latch, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		users:    users,
		listings: listings,
		latch:    latch,
		logger:   logger,
	}
}

// SearchUsers serves GET /admin/users/search?email=
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	users, err := h.users.SearchByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.FromError(c, "failed to search users", err)
		return
	}
	response.Success(c, http.StatusOK, "users retrieved", users)
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	active, ok := bindActive(c)
	if !ok {
		return
	}

	if err := h.users.SetActive(c.Request.Context(), id, active); err != nil {
		response.FromError(c, "failed to update user status", err)
		return
	}

	h.logger.Info("admin changed user status",
		zap.Int64("admin_id", middleware.MustGetUserID(c)),
		zap.Int64("user_id", id),
		zap.Bool("active", active),
	)
	response.Success(c, http.StatusOK, "user status updated", gin.H{"id": id, "active": active})
}

// UpdateUserCarsStatus toggles every listing owned by the user.
func (h *AdminHandler) UpdateUserCarsStatus(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	active, ok := bindActive(c)
	if !ok {
		return
	}

	affected, err := h.listings.BulkSetActiveForOwner(c.Request.Context(), middleware.MustGetViewer(c), id, active)
	if err != nil {
		response.FromError(c, "failed to update user cars", err)
		return
	}

	response.Success(c, http.StatusOK, "user cars status updated", catalog.BulkStatusResult{
		OwnerID:  id,
		Active:   active,
		Affected: affected,
	})
}

func (h *AdminHandler) CatalogStatus(c *gin.Context) {
	response.Success(c, http.StatusOK, "catalog status", h.latch.Status())
}

// ResetFallback sends catalog reads back to the database.
func (h *AdminHandler) ResetFallback(c *gin.Context) {
	h.latch.ResetFallback()
	h.logger.Warn("catalog fallback reset", zap.Int64("admin_id", middleware.MustGetUserID(c)))
	response.Success(c, http.StatusOK, "catalog fallback reset", h.latch.Status())
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid user ID", xerrors.Invalid("id must be an integer"))
		return 0, false
	}
	return id, true
}

func bindActive(c *gin.Context) (bool, bool) {
	var req catalog.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		response.ValidationError(c, "invalid request", xerrors.Invalid("active must be a boolean"))
		return false, false
	}
	return *req.Active, true
}
