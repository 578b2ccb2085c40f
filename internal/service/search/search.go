// internal/service/search/search.go
package search

import (
	"context"
	"fmt"
	"strings"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/search"
	xerrors "carmarket-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Service struct {
	repo   search.Repository
	logger *zap.Logger
}

func NewService(repo search.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Save stores a named filter set together with its /cars query string.
func (s *Service) Save(ctx context.Context, userID int64, req *search.CreateRequest) (*search.SavedSearch, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return nil, xerrors.Invalid("name is required")
	}
	if req.Filters == nil {
		return nil, xerrors.Invalid("filters are required")
	}

	saved := &search.SavedSearch{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Filters:     *req.Filters,
		QueryString: req.Filters.QueryString(),
		NotifyOnNew: req.NotifyOnNew,
	}
	if _, err := s.repo.Create(ctx, saved); err != nil {
		return nil, db.AsUnavailable(err)
	}

	s.logger.Info("search saved", zap.Int64("user_id", userID), zap.Int64("search_id", saved.ID))
	return saved, nil
}

// List returns the user's searches, newest first.
func (s *Service) List(ctx context.Context, userID int64) ([]search.SavedSearch, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, db.AsUnavailable(err)
	}
	return out, nil
}

// Delete removes one of the user's searches. Someone else's search is
// reported as not found.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return db.AsUnavailable(err)
	}
	if !deleted {
		return fmt.Errorf("saved search %d: %w", id, xerrors.ErrNotFound)
	}
	return nil
}
