// internal/service/listing/lifecycle.go
package listing

import (
	"context"
	"errors"
	"fmt"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/auth"
	"carmarket-service/internal/domain/catalog"
	xerrors "carmarket-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Store is the write side of the listing repository.
type Store interface {
	Create(ctx context.Context, l *catalog.Listing) (int64, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
	SetActiveForOwner(ctx context.Context, ownerID int64, active bool) (int64, error)
	OwnerOf(ctx context.Context, id int64) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]catalog.ListingView, error)
}

// Service creates listings and toggles their visibility. Writes never fall
// back: an unreachable database is reported as xerrors.ErrUnavailable.
type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create validates the request and stores a new listing. A missing owner
// defaults to the caller; non-admins may only post for themselves.
func (s *Service) Create(ctx context.Context, actor *auth.Viewer, req *catalog.CreateListingRequest) (int64, error) {
	if req == nil {
		return 0, xerrors.Invalid("request body is required")
	}
	if req.Owner == nil && actor != nil {
		owner := actor.UserID
		req.Owner = &owner
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if actor != nil && !actor.CanManage(*req.Owner) {
		return 0, fmt.Errorf("create listing for owner %d: %w", *req.Owner, xerrors.ErrForbidden)
	}

	l := req.ToListing()
	id, err := s.store.Create(ctx, l)
	if err != nil {
		return 0, db.AsUnavailable(err)
	}

	s.logger.Info("listing created",
		zap.Int64("listing_id", id),
		zap.Int64("owner_id", l.Owner),
	)
	return id, nil
}

// SoftDelete deactivates a listing. False means the listing does not exist
// or is already inactive.
func (s *Service) SoftDelete(ctx context.Context, actor *auth.Viewer, id int64) (bool, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	ok, err := s.store.SoftDelete(ctx, id)
	if err != nil {
		return false, db.AsUnavailable(err)
	}
	if ok {
		s.logger.Info("listing deactivated", zap.Int64("listing_id", id))
	}
	return ok, nil
}

// SetActive toggles a listing for its owner or an admin. Anyone else gets
// xerrors.ErrForbidden and the row is left untouched.
func (s *Service) SetActive(ctx context.Context, actor *auth.Viewer, id int64, active bool) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}

	if _, err := s.store.SetActive(ctx, id, active); err != nil {
		return db.AsUnavailable(err)
	}

	s.logger.Info("listing status changed",
		zap.Int64("listing_id", id),
		zap.Bool("active", active),
	)
	return nil
}

// BulkSetActiveForOwner flips every listing of one user. Admin only.
func (s *Service) BulkSetActiveForOwner(ctx context.Context, actor *auth.Viewer, ownerID int64, active bool) (int64, error) {
	if !actor.IsAdmin() {
		return 0, fmt.Errorf("bulk status change: %w", xerrors.ErrForbidden)
	}

	n, err := s.store.SetActiveForOwner(ctx, ownerID, active)
	if err != nil {
		return 0, db.AsUnavailable(err)
	}

	s.logger.Info("owner listings status changed",
		zap.Int64("owner_id", ownerID),
		zap.Bool("active", active),
		zap.Int64("affected", n),
		zap.Int64("admin_id", actor.UserID),
	)
	return n, nil
}

// ListByOwner returns all of the owner's listings, active or not.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]catalog.ListingView, error) {
	listings, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, db.AsUnavailable(err)
	}
	return listings, nil
}

// authorize checks that actor may manage listing id. A nil actor is an
// internal caller and is always allowed.
func (s *Service) authorize(ctx context.Context, actor *auth.Viewer, id int64) error {
	owner, err := s.store.OwnerOf(ctx, id)
	if err != nil {
		return db.AsUnavailable(err)
	}
	if actor == nil || actor.CanManage(owner) {
		return nil
	}

	s.logger.Warn("listing change refused",
		zap.Int64("listing_id", id),
		zap.Int64("user_id", actor.UserID),
	)
	return fmt.Errorf("listing %d: %w", id, xerrors.ErrForbidden)
}
