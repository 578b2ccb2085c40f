// internal/service/favorite/favorite.go
package favorite

import (
	"context"
	"errors"
	"fmt"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/catalog"
	"carmarket-service/internal/domain/favorite"
	xerrors "carmarket-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// ListingLookup resolves an active listing by id.
type ListingLookup interface {
	GetByID(ctx context.Context, id int64) (*catalog.ListingView, error)
}

type Service struct {
	repo     favorite.Repository
	listings ListingLookup
	logger   *zap.Logger
}

func NewService(repo favorite.Repository, listings ListingLookup, logger *zap.Logger) *Service {
	return &Service{repo: repo, listings: listings, logger: logger}
}

// Add bookmarks an active listing. A repeat add is a conflict and leaves the
// single existing row in place.
func (s *Service) Add(ctx context.Context, userID, carID int64) (*favorite.Favorite, error) {
	if _, err := s.listings.GetByID(ctx, carID); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("listing %d: %w", carID, xerrors.ErrNotFound)
		}
		return nil, db.AsUnavailable(err)
	}

	fav, err := s.repo.Add(ctx, userID, carID)
	if err != nil {
		if errors.Is(err, xerrors.ErrConflict) {
			return nil, fmt.Errorf("listing %d is already in favorites: %w", carID, xerrors.ErrConflict)
		}
		return nil, db.AsUnavailable(err)
	}

	s.logger.Info("favorite added", zap.Int64("user_id", userID), zap.Int64("listing_id", carID))
	return fav, nil
}

func (s *Service) Remove(ctx context.Context, userID, carID int64) error {
	removed, err := s.repo.Remove(ctx, userID, carID)
	if err != nil {
		return db.AsUnavailable(err)
	}
	if !removed {
		return fmt.Errorf("favorite for listing %d: %w", carID, xerrors.ErrNotFound)
	}
	return nil
}

// List returns the user's favorites, newest first.
func (s *Service) List(ctx context.Context, userID int64) ([]favorite.Entry, error) {
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, db.AsUnavailable(err)
	}
	return entries, nil
}
