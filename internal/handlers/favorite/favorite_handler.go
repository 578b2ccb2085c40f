// internal/handlers/favorite/favorite_handler.go
package favorite

import (
	"context"
	"net/http"

	"carmarket-service/internal/domain/favorite"
	"carmarket-service/internal/middleware"
	"carmarket-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Favorites interface {
	Add(ctx context.Context, userID, carID int64) (*favorite.Favorite, error)
	Remove(ctx context.Context, userID, carID int64) error
	List(ctx context.Context, userID int64) ([]favorite.Entry, error)
}

type FavoriteHandler struct {
	favorites Favorites
	logger    *zap.Logger
}

func NewFavoriteHandler(favorites Favorites, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	entries, err := h.favorites.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list favorites", zap.Int64("user_id", userID), zap.Error(err))
		response.FromError(c, "failed to fetch favorites", err)
		return
	}
	response.Success(c, http.StatusOK, "favorites retrieved", entries)
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	var req favorite.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "carId is required", err)
		return
	}

	userID := middleware.MustGetUserID(c)
	fav, err := h.favorites.Add(c.Request.Context(), userID, req.CarID)
	if err != nil {
		response.FromError(c, "failed to add favorite", err)
		return
	}
	response.Success(c, http.StatusCreated, "favorite added", fav)
}

// Remove accepts carId either in the query string or in a JSON body.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	var req favorite.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ValidationError(c, "carId is required", err)
			return
		}
	}

	userID := middleware.MustGetUserID(c)
	if err := h.favorites.Remove(c.Request.Context(), userID, req.CarID); err != nil {
		response.FromError(c, "failed to remove favorite", err)
		return
	}
	response.Success(c, http.StatusOK, "favorite removed", gin.H{"carId": req.CarID})
}
