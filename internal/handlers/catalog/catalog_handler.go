// internal/handlers/catalog/catalog_handler.go
package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"carmarket-service/internal/domain/auth"
	"carmarket-service/internal/domain/catalog"
	"carmarket-service/internal/middleware"
	xerrors "carmarket-service/internal/pkg/errors"
	"carmarket-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Catalog is the read side served to the public listing pages.
type Catalog interface {
	ListAll(ctx context.Context) ([]catalog.ListingView, error)
	ListFiltered(ctx context.Context, f catalog.Filter) ([]catalog.ListingView, error)
	GetForViewer(ctx context.Context, id int64, viewer *auth.Viewer) (*catalog.ListingView, error)
}

// Lifecycle is the write side owned by sellers and admins.
type Lifecycle interface {
	Create(ctx context.Context, actor *auth.Viewer, req *catalog.CreateListingRequest) (int64, error)
	SoftDelete(ctx context.Context, actor *auth.Viewer, id int64) (bool, error)
	SetActive(ctx context.Context, actor *auth.Viewer, id int64, active bool) error
	ListByOwner(ctx context.Context, ownerID int64) ([]catalog.ListingView, error)
}

type CatalogHandler struct {
	catalog  Catalog
	listings Lifecycle
	logger   *zap.Logger
}

func NewCatalogHandler(reader Catalog, listings Lifecycle, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  reader,
		listings: listings,
		logger:   logger,
	}
}

// ListCars serves GET /cars. Any filter parameter switches to the filtered query.
func (h *CatalogHandler) ListCars(c *gin.Context) {
	filter, err := catalog.ParseFilter(c.Request.URL.Query())
	if err != nil {
		response.ValidationError(c, "invalid filter", err)
		return
	}

	var cars []catalog.ListingView
	if filter.IsEmpty() {
		cars, err = h.catalog.ListAll(c.Request.Context())
	} else {
		cars, err = h.catalog.ListFiltered(c.Request.Context(), filter)
	}
	if err != nil {
		h.logger.Error("failed to list cars", zap.String("query", filter.QueryString()), zap.Error(err))
		response.FromError(c, "failed to fetch cars", err)
		return
	}

	response.Success(c, http.StatusOK, "cars retrieved", cars)
}

// GetCar serves GET /cars/:id. Owners and admins also see inactive listings.
func (h *CatalogHandler) GetCar(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}

	car, err := h.catalog.GetForViewer(c.Request.Context(), id, middleware.GetViewer(c))
	if err != nil {
		response.FromError(c, "car not found", err)
		return
	}

	response.Success(c, http.StatusOK, "car retrieved", car)
}

// MyCars serves GET /cars/mine.
func (h *CatalogHandler) MyCars(c *gin.Context) {
	viewer := middleware.MustGetViewer(c)

	cars, err := h.listings.ListByOwner(c.Request.Context(), viewer.UserID)
	if err != nil {
		h.logger.Error("failed to list own cars", zap.Int64("user_id", viewer.UserID), zap.Error(err))
		response.FromError(c, "failed to fetch cars", err)
		return
	}

	response.Success(c, http.StatusOK, "cars retrieved", cars)
}

func (h *CatalogHandler) CreateCar(c *gin.Context) {
	var req catalog.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// name the missing field by its json key rather than the struct field
		var missing validator.ValidationErrors
		if errors.As(err, &missing) {
			if vErr := req.Validate(); vErr != nil {
				err = vErr
			}
		}
		response.ValidationError(c, "invalid request", err)
		return
	}

	viewer := middleware.MustGetViewer(c)
	id, err := h.listings.Create(c.Request.Context(), viewer, &req)
	if err != nil {
		h.logger.Error("failed to create car", zap.Int64("user_id", viewer.UserID), zap.Error(err))
		response.FromError(c, "failed to create car", err)
		return
	}

	response.Success(c, http.StatusCreated, "car created", gin.H{"id": id})
}

// DeleteCar soft-deletes. An already inactive listing reports not found.
func (h *CatalogHandler) DeleteCar(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}

	viewer := middleware.MustGetViewer(c)
	deleted, err := h.listings.SoftDelete(c.Request.Context(), viewer, id)
	if err != nil {
		response.FromError(c, "failed to delete car", err)
		return
	}
	if !deleted {
		response.NotFound(c, "car not found or already inactive")
		return
	}

	response.Success(c, http.StatusOK, "car deleted", gin.H{"id": id})
}

func (h *CatalogHandler) UpdateCarStatus(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}

	active, ok := bindActive(c)
	if !ok {
		return
	}

	viewer := middleware.MustGetViewer(c)
	if err := h.listings.SetActive(c.Request.Context(), viewer, id, active); err != nil {
		response.FromError(c, "failed to update car status", err)
		return
	}

	response.Success(c, http.StatusOK, "car status updated", gin.H{"id": id, "active": active})
}

func listingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid car ID", xerrors.Invalid("id must be an integer"))
		return 0, false
	}
	return id, true
}

// bindActive reads the {"active": bool} body shared by every status toggle.
func bindActive(c *gin.Context) (bool, bool) {
	var req catalog.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		response.ValidationError(c, "invalid request", xerrors.Invalid("active must be a boolean"))
		return false, false
	}
	return *req.Active, true
}
