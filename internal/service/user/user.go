// internal/service/user/user.go
package user

import (
	"context"
	"fmt"
	"strings"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/user"
	xerrors "carmarket-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// SessionRevoker drops every live session of a user.
type SessionRevoker interface {
	InvalidateAllUserSessions(ctx context.Context, userID int64) error
}

// Service holds the admin operations on accounts.
type Service struct {
	repo     user.Repository
	sessions SessionRevoker
	logger   *zap.Logger
}

// NewService builds the service. sessions may be nil.
func NewService(repo user.Repository, sessions SessionRevoker, logger *zap.Logger) *Service {
	return &Service{repo: repo, sessions: sessions, logger: logger}
}

// SearchByEmail matches a case-insensitive email fragment.
func (s *Service) SearchByEmail(ctx context.Context, fragment string) ([]user.User, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, xerrors.Invalid("email is required")
	}

	users, err := s.repo.SearchByEmail(ctx, fragment)
	if err != nil {
		return nil, db.AsUnavailable(err)
	}
	return users, nil
}

// SetActive blocks or unblocks an account. Blocking also ends its sessions.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	found, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return db.AsUnavailable(err)
	}
	if !found {
		// MySQL reports zero rows when the value is unchanged
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return fmt.Errorf("user %d: %w", id, db.AsUnavailable(err))
		}
	}

	if !active && s.sessions != nil {
		if err := s.sessions.InvalidateAllUserSessions(ctx, id); err != nil {
			s.logger.Error("failed to revoke sessions", zap.Int64("user_id", id), zap.Error(err))
		}
	}

	s.logger.Info("user status changed", zap.Int64("user_id", id), zap.Bool("active", active))
	return nil
}
