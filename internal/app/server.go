// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"carmarket-service/internal/config"
	"carmarket-service/internal/db"
	adminHandler "carmarket-service/internal/handlers/admin"
	authHandler "carmarket-service/internal/handlers/auth"
	catalogHandler "carmarket-service/internal/handlers/catalog"
	favoriteHandler "carmarket-service/internal/handlers/favorite"
	referenceHandler "carmarket-service/internal/handlers/reference"
	searchHandler "carmarket-service/internal/handlers/search"
	"carmarket-service/internal/middleware"
	"carmarket-service/internal/pkg/jwt"
	"carmarket-service/internal/pkg/response"
	"carmarket-service/internal/pkg/session"
	"carmarket-service/internal/repository/cache"
	"carmarket-service/internal/repository/sqldb"
	authUsecase "carmarket-service/internal/service/auth"
	catalogUsecase "carmarket-service/internal/service/catalog"
	"carmarket-service/internal/service/fallback"
	favoriteUsecase "carmarket-service/internal/service/favorite"
	listingUsecase "carmarket-service/internal/service/listing"
	referenceUsecase "carmarket-service/internal/service/reference"
	searchUsecase "carmarket-service/internal/service/search"
	userUsecase "carmarket-service/internal/service/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the connections the service graph is built on. Redis is optional.
type Deps struct {
	Exec   db.Executor
	Redis  *redis.Client
	JWT    *jwt.Manager
	Config config.AppConfig
	Logger *zap.Logger
}

type Server struct {
	cfg         config.AppConfig
	logger      *zap.Logger
	exec        db.Executor
	redis       *redis.Client
	authService *authUsecase.AuthService
	http        *http.Server
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	return &Server{cfg: cfg, logger: logger}
}

// Start connects the stores, builds the router and serves until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	response.ExposeInternalErrors(!s.cfg.IsProduction())
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ----- Database -----
	exec, err := db.Open(ctx, s.cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", s.cfg.DB.Driver, err)
	}
	s.exec = exec
	if err := exec.Ping(ctx); err != nil {
		// reads fall back to the in-memory catalog until the database returns
		s.logger.Error("database ping failed", zap.String("driver", s.cfg.DB.Driver), zap.Error(err))
	} else {
		s.logger.Info("database connected", zap.String("driver", s.cfg.DB.Driver))
	}

	// ----- Redis -----
	if s.cfg.RedisAddr != "" {
		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Address:  s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       s.cfg.RedisDB,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		s.redis = redisClient
		s.logger.Info("redis connected", zap.String("addr", s.cfg.RedisAddr))

		// lookup tables may have changed since the last deploy
		if err := cache.NewReferenceCache(redisClient, s.cfg.ReferenceCacheTTL).Invalidate(ctx); err != nil {
			s.logger.Warn("failed to flush reference cache", zap.Error(err))
		}
	} else {
		s.logger.Warn("REDIS_ADDR not set, sessions and reference cache disabled")
	}

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	handlers, authService := BuildHandlers(Deps{
		Exec:   exec,
		Redis:  s.redis,
		JWT:    jwtManager,
		Config: s.cfg,
		Logger: s.logger,
	})
	s.authService = authService

	// ----- Initialize Admin -----
	if err := s.initializeAdmin(ctx); err != nil {
		s.logger.Error("failed to initialize admin", zap.Error(err))
		// Don't fail startup, just log the error
	}

	s.http = &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           NewRouter(s.cfg, s.logger, handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr), zap.String("env", s.cfg.Env))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP traffic and closes the pools.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.http != nil {
		errs = append(errs, s.http.Shutdown(ctx))
	}
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.exec != nil {
		s.exec.Close()
	}
	return errors.Join(errs...)
}

// BuildHandlers wires repositories, services and handlers.
func BuildHandlers(d Deps) (*Handlers, *authUsecase.AuthService) {
	logger := d.Logger

	// ----- Repositories -----
	listingRepo := sqldb.NewListingRepository(d.Exec)
	referenceRepo := sqldb.NewReferenceRepository(d.Exec)
	userRepo := sqldb.NewUserRepository(d.Exec)
	favoriteRepo := sqldb.NewFavoriteRepository(d.Exec)
	searchRepo := sqldb.NewSavedSearchRepository(d.Exec)

	// ----- Session Manager, Rate Limiter & Cache -----
	// left as nil interfaces when redis is absent
	var (
		sessions    authUsecase.SessionStore
		rateLimiter authUsecase.LoginLimiter
		revoker     userUsecase.SessionRevoker
		refCache    referenceUsecase.Cache
	)
	if d.Redis != nil {
		sessionManager := session.NewManager(d.Redis)
		sessions = sessionManager
		revoker = sessionManager
		rateLimiter = session.NewRateLimiter(d.Redis)
		refCache = cache.NewReferenceCache(d.Redis, d.Config.ReferenceCacheTTL)
	}

	var fallbackSource catalogUsecase.Reader
	if d.Config.FallbackEnabled {
		fallbackSource = fallback.NewSource()
	}

	// ----- Services (Usecases) -----
	authService := authUsecase.NewAuthService(userRepo, d.JWT, sessions, rateLimiter, logger)
	catalogEngine := catalogUsecase.NewEngine(listingRepo, fallbackSource, logger)
	listingService := listingUsecase.NewService(listingRepo, logger)
	referenceService := referenceUsecase.NewService(referenceRepo, refCache, logger)
	userService := userUsecase.NewService(userRepo, revoker, logger)
	favoriteService := favoriteUsecase.NewService(favoriteRepo, listingRepo, logger)
	searchService := searchUsecase.NewService(searchRepo, logger)

	// ----- Handlers -----
	return &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authService, logger),
		CatalogHandler:   catalogHandler.NewCatalogHandler(catalogEngine, listingService, logger),
		ReferenceHandler: referenceHandler.NewReferenceHandler(referenceService, logger),
		FavoriteHandler:  favoriteHandler.NewFavoriteHandler(favoriteService, logger),
		SearchHandler:    searchHandler.NewSearchHandler(searchService, logger),
		AdminHandler:     adminHandler.NewAdminHandler(userService, listingService, catalogEngine, logger),
		AuthMiddleware:   middleware.NewAuthMiddleware(authService),
	}, authService
}

// initializeAdmin creates the bootstrap admin if it doesn't exist
func (s *Server) initializeAdmin(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if s.cfg.AdminEmail != "" && len(s.cfg.AdminPassword) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}

	if err := s.authService.EnsureAdminExists(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword, s.cfg.AdminName); err != nil {
		return fmt.Errorf("failed to ensure admin exists: %w", err)
	}
	return nil
}
