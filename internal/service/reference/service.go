// internal/service/reference/service.go
package reference

import (
	"context"
	"fmt"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/reference"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Cache is an optional read-through store for lookup tables.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type Service struct {
	repo   reference.Repository
	cache  Cache
	logger *zap.Logger
}

// NewService builds the resolver. cache may be nil.
func NewService(repo reference.Repository, cache Cache, logger *zap.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

func (s *Service) Brands(ctx context.Context) ([]reference.Brand, error) {
	return cached(ctx, s, "carbrands", s.repo.Brands)
}

// ModelsByBrand returns an empty list for an unknown brand.
func (s *Service) ModelsByBrand(ctx context.Context, brandID int64) ([]reference.Model, error) {
	return cached(ctx, s, fmt.Sprintf("models:%d", brandID), func(ctx context.Context) ([]reference.Model, error) {
		return s.repo.ModelsByBrand(ctx, brandID)
	})
}

func (s *Service) EngineTypes(ctx context.Context) ([]reference.EngineType, error) {
	return cached(ctx, s, "enginetypes", s.repo.EngineTypes)
}

func (s *Service) BodyTypes(ctx context.Context) ([]reference.BodyType, error) {
	return cached(ctx, s, "bodytypes", s.repo.BodyTypes)
}

func (s *Service) GearBoxes(ctx context.Context) ([]reference.GearBox, error) {
	return cached(ctx, s, "gearboxes", s.repo.GearBoxes)
}

func (s *Service) DriveTypes(ctx context.Context) ([]reference.DriveType, error) {
	return cached(ctx, s, "transmissions", s.repo.DriveTypes)
}

func (s *Service) Colors(ctx context.Context) ([]reference.Color, error) {
	return cached(ctx, s, "colors", s.repo.Colors)
}

// FetchAll loads the six lookup tables concurrently. The first failure
// cancels the rest and fails the whole bundle.
func (s *Service) FetchAll(ctx context.Context) (*reference.Bundle, error) {
	var b reference.Bundle
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { b.Brands, err = s.Brands(gctx); return })
	g.Go(func() (err error) { b.EngineTypes, err = s.EngineTypes(gctx); return })
	g.Go(func() (err error) { b.BodyTypes, err = s.BodyTypes(gctx); return })
	g.Go(func() (err error) { b.GearBoxes, err = s.GearBoxes(gctx); return })
	g.Go(func() (err error) { b.DriveTypes, err = s.DriveTypes(gctx); return })
	g.Go(func() (err error) { b.Colors, err = s.Colors(gctx); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch reference data: %w", err)
	}
	return &b, nil
}

// cached wraps a lookup with the optional cache. Cache failures are logged
// and never fail the lookup.
func cached[T any](ctx context.Context, s *Service, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		var hit []T
		ok, err := s.cache.Get(ctx, key, &hit)
		if err != nil {
			s.logger.Warn("reference cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return hit, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, db.AsUnavailable(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items); err != nil {
			s.logger.Warn("reference cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}
