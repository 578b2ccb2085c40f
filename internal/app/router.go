// internal/app/router.go
package app

import (
	"net/http"

	"carmarket-service/internal/config"
	adminHandler "carmarket-service/internal/handlers/admin"
	authHandler "carmarket-service/internal/handlers/auth"
	catalogHandler "carmarket-service/internal/handlers/catalog"
	favoriteHandler "carmarket-service/internal/handlers/favorite"
	referenceHandler "carmarket-service/internal/handlers/reference"
	searchHandler "carmarket-service/internal/handlers/search"
	"carmarket-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	CatalogHandler   *catalogHandler.CatalogHandler
	ReferenceHandler *referenceHandler.ReferenceHandler
	FavoriteHandler  *favoriteHandler.FavoriteHandler
	SearchHandler    *searchHandler.SearchHandler
	AdminHandler     *adminHandler.AdminHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// NewRouter builds the gin engine with the global middleware chain.
func NewRouter(cfg config.AppConfig, logger *zap.Logger, h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)
	SetupRouter(r, h)
	return r
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Catalog ====================
	cars := api.Group("/cars")
	{
		cars.GET("", h.AuthMiddleware.OptionalAuth(), h.CatalogHandler.ListCars)
		cars.GET("/mine", h.AuthMiddleware.Auth(), h.CatalogHandler.MyCars)
		cars.GET("/:id", h.AuthMiddleware.OptionalAuth(), h.CatalogHandler.GetCar)
		cars.POST("", h.AuthMiddleware.Auth(), h.CatalogHandler.CreateCar)
		cars.DELETE("/:id", h.AuthMiddleware.Auth(), h.CatalogHandler.DeleteCar)
		cars.PATCH("/:id/status", h.AuthMiddleware.Auth(), h.CatalogHandler.UpdateCarStatus)
	}

	// ==================== Reference Data ====================
	ref := api.Group("/reference")
	{
		ref.GET("/all", h.ReferenceHandler.All)
		ref.GET("/brands", h.ReferenceHandler.Brands)
		ref.GET("/models", h.ReferenceHandler.Models)
		ref.GET("/engine-types", h.ReferenceHandler.EngineTypes)
		ref.GET("/body-types", h.ReferenceHandler.BodyTypes)
		ref.GET("/gearboxes", h.ReferenceHandler.GearBoxes)
		ref.GET("/drive-types", h.ReferenceHandler.DriveTypes)
		ref.GET("/colors", h.ReferenceHandler.Colors)
	}

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/me", h.AuthHandler.GetMe)
	}

	// ==================== User Area ====================
	userArea := api.Group("/user")
	userArea.Use(h.AuthMiddleware.Auth())
	{
		userArea.GET("/favorites", h.FavoriteHandler.List)
		userArea.POST("/favorites", h.FavoriteHandler.Add)
		userArea.DELETE("/favorites", h.FavoriteHandler.Remove)

		userArea.GET("/saved-searches", h.SearchHandler.List)
		userArea.POST("/saved-searches", h.SearchHandler.Save)
		userArea.DELETE("/saved-searches/:id", h.SearchHandler.Delete)
	}

	// ==================== Admin ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		admin.GET("/users/search", h.AdminHandler.SearchUsers)
		admin.PATCH("/users/:id/status", h.AdminHandler.UpdateUserStatus)
		admin.PATCH("/users/:id/cars-status", h.AdminHandler.UpdateUserCarsStatus)
		admin.GET("/catalog/status", h.AdminHandler.CatalogStatus)
		admin.POST("/catalog/fallback/reset", h.AdminHandler.ResetFallback)
	}
}
