// internal/handlers/search/search_handler.go
package search

import (
	"context"
	"net/http"
	"strconv"

	"carmarket-service/internal/domain/search"
	"carmarket-service/internal/middleware"
	xerrors "carmarket-service/internal/pkg/errors"
	"carmarket-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Searches interface {
	Save(ctx context.Context, userID int64, req *search.CreateRequest) (*search.SavedSearch, error)
	List(ctx context.Context, userID int64) ([]search.SavedSearch, error)
	Delete(ctx context.Context, userID, id int64) error
}

type SearchHandler struct {
	searches Searches
	logger   *zap.Logger
}

func NewSearchHandler(searches Searches, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{searches: searches, logger: logger}
}

func (h *SearchHandler) List(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	out, err := h.searches.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list saved searches", zap.Int64("user_id", userID), zap.Error(err))
		response.FromError(c, "failed to fetch saved searches", err)
		return
	}
	response.Success(c, http.StatusOK, "saved searches retrieved", out)
}

func (h *SearchHandler) Save(c *gin.Context) {
	var req search.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	saved, err := h.searches.Save(c.Request.Context(), middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, "failed to save search", err)
		return
	}
	response.Success(c, http.StatusCreated, "search saved", saved)
}

func (h *SearchHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid search ID", xerrors.Invalid("id must be an integer"))
		return
	}

	if err := h.searches.Delete(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.FromError(c, "failed to delete search", err)
		return
	}
	response.Success(c, http.StatusOK, "search deleted", gin.H{"id": id})
}
