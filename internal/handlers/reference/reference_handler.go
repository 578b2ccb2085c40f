// internal/handlers/reference/reference_handler.go
package reference

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"carmarket-service/internal/domain/reference"
	xerrors "carmarket-service/internal/pkg/errors"
	"carmarket-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Resolver interface {
	FetchAll(ctx context.Context) (*reference.Bundle, error)
	Brands(ctx context.Context) ([]reference.Brand, error)
	ModelsByBrand(ctx context.Context, brandID int64) ([]reference.Model, error)
	EngineTypes(ctx context.Context) ([]reference.EngineType, error)
	BodyTypes(ctx context.Context) ([]reference.BodyType, error)
	GearBoxes(ctx context.Context) ([]reference.GearBox, error)
	DriveTypes(ctx context.Context) ([]reference.DriveType, error)
	Colors(ctx context.Context) ([]reference.Color, error)
}

type ReferenceHandler struct {
	resolver Resolver
	logger   *zap.Logger
}

func NewReferenceHandler(resolver Resolver, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{resolver: resolver, logger: logger}
}

// All serves the combined bundle used to populate the search form.
func (h *ReferenceHandler) All(c *gin.Context) {
	bundle, err := h.resolver.FetchAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to fetch reference data", zap.Error(err))
		response.FromError(c, "failed to fetch reference data", err)
		return
	}
	response.Success(c, http.StatusOK, "reference data retrieved", bundle)
}

// Models serves /reference/models?brandId=. A missing brand yields an empty list.
func (h *ReferenceHandler) Models(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("brandId"))
	if raw == "" {
		response.Success(c, http.StatusOK, "models retrieved", []reference.Model{})
		return
	}

	brandID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid brand ID", xerrors.Invalid("brandId must be an integer"))
		return
	}

	models, err := h.resolver.ModelsByBrand(c.Request.Context(), brandID)
	if err != nil {
		h.logger.Error("failed to fetch models", zap.Int64("brand_id", brandID), zap.Error(err))
		response.FromError(c, "failed to fetch models", err)
		return
	}
	response.Success(c, http.StatusOK, "models retrieved", models)
}

func (h *ReferenceHandler) Brands(c *gin.Context) {
	serve(c, h.logger, "brands", h.resolver.Brands)
}

func (h *ReferenceHandler) EngineTypes(c *gin.Context) {
	serve(c, h.logger, "engine types", h.resolver.EngineTypes)
}

func (h *ReferenceHandler) BodyTypes(c *gin.Context) {
	serve(c, h.logger, "body types", h.resolver.BodyTypes)
}

func (h *ReferenceHandler) GearBoxes(c *gin.Context) {
	serve(c, h.logger, "gearboxes", h.resolver.GearBoxes)
}

func (h *ReferenceHandler) DriveTypes(c *gin.Context) {
	serve(c, h.logger, "drive types", h.resolver.DriveTypes)
}

func (h *ReferenceHandler) Colors(c *gin.Context) {
	serve(c, h.logger, "colors", h.resolver.Colors)
}

func serve[T any](c *gin.Context, logger *zap.Logger, what string, load func(context.Context) ([]T, error)) {
	items, err := load(c.Request.Context())
	if err != nil {
		logger.Error("failed to fetch "+what, zap.Error(err))
		response.FromError(c, "failed to fetch "+what, err)
		return
	}
	response.Success(c, http.StatusOK, what+" retrieved", items)
}
