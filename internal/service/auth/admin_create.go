// internal/service/auth/admin_create.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"carmarket-service/internal/domain/auth"
	"carmarket-service/internal/domain/user"
	xerrors "carmarket-service/internal/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdminExists creates the admin account on startup if its email is free.
func (s *AuthService) EnsureAdminExists(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		s.logger.Info("admin credentials not configured, skipping admin creation")
		return nil
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if existing.AccountType != auth.AccountTypeAdmin {
			return fmt.Errorf("email %s already exists but is not an admin account", email)
		}
		s.logger.Info("admin already exists, skipping creation", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return fmt.Errorf("failed to check admin existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if name == "" {
		name = "Administrator"
	}

	admin := &user.User{
		Name:         name,
		Email:        email,
		Phone:        "",
		PasswordHash: string(hashed),
		AccountType:  auth.AccountTypeAdmin,
		Active:       true,
	}
	if _, err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("admin account created", zap.Int64("user_id", admin.ID), zap.String("email", email))
	return nil
}
