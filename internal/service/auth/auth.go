// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/auth"
	"carmarket-service/internal/domain/user"
	xerrors "carmarket-service/internal/pkg/errors"
	"carmarket-service/internal/pkg/jwt"
	"carmarket-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SessionStore is the redis-backed session and blacklist store.
type SessionStore interface {
	CreateSession(ctx context.Context, data *session.SessionData) error
	GetSession(ctx context.Context, userID int64, jti string) (*session.SessionData, error)
	InvalidateSession(ctx context.Context, userID int64, jti string) error
	InvalidateAllUserSessions(ctx context.Context, userID int64) error
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

type LoginLimiter interface {
	CheckLoginAttempt(ctx context.Context, ip, email string) (bool, int64, error)
	ResetLoginAttempts(ctx context.Context, ip, email string) error
}

type AuthService struct {
	users       user.Repository
	jwtManager  *jwt.Manager
	sessions    SessionStore
	rateLimiter LoginLimiter
	logger      *zap.Logger
}

// NewAuthService wires the identity flow. sessions and rateLimiter may be nil
// when redis is not configured; tokens are then checked by signature only.
func NewAuthService(
	users user.Repository,
	jwtManager *jwt.Manager,
	sessions SessionStore,
	rateLimiter LoginLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		jwtManager:  jwtManager,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// ========== Registration ==========

// Register creates a regular, active account.
func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*user.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hashed),
		AccountType:  auth.AccountTypeUser,
		Active:       true,
	}

	if _, err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, xerrors.ErrConflict) {
			return nil, fmt.Errorf("email %s is already registered: %w", u.Email, xerrors.ErrConflict)
		}
		return nil, db.AsUnavailable(fmt.Errorf("failed to create user: %w", err))
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return u, nil
}

func validateRegistration(req *auth.RegisterRequest) error {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return xerrors.Invalid("name is required")
	case strings.TrimSpace(req.Email) == "":
		return xerrors.Invalid("email is required")
	case strings.TrimSpace(req.Phone) == "":
		return xerrors.Invalid("phone is required")
	case !emailPattern.MatchString(strings.TrimSpace(req.Email)):
		return xerrors.Invalid("email format is invalid")
	case len(req.Password) < minPasswordLength:
		return xerrors.Invalid("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// ========== Login ==========

// Login authenticates with email/password and opens a session.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if s.rateLimiter != nil {
		allowed, _, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, req.Email)
		if err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("too many login attempts, please try again in 15 minutes: %w", xerrors.ErrRateLimited)
		}
	}

	u, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("invalid credentials: %w", xerrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, db.AsUnavailable(fmt.Errorf("failed to load user: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", xerrors.ErrUnauthorized)
	}

	if !u.Active {
		return nil, fmt.Errorf("account is blocked: %w", xerrors.ErrForbidden)
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, req.Email); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	return s.loginWithUser(ctx, u, req.IPAddress, req.UserAgent)
}

// loginWithUser generates the access token and stores its session.
func (s *AuthService) loginWithUser(ctx context.Context, u *user.User, ipAddress, userAgent string) (*auth.LoginResponse, error) {
	issued, err := s.jwtManager.Generator.IssueAccessToken(u.ID, u.AccountType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if s.sessions != nil {
		data := &session.SessionData{
			JTI:         issued.JTI,
			UserID:      u.ID,
			AccountType: u.AccountType,
			Email:       u.Email,
			IPAddress:   ipAddress,
			UserAgent:   userAgent,
			LoginAt:     issued.IssuedAt,
			ExpiresAt:   issued.ExpiresAt,
		}
		if err := s.sessions.CreateSession(ctx, data); err != nil {
			return nil, fmt.Errorf("failed to create session cache: %w", err)
		}
	}

	s.logger.Info("user logged in", zap.Int64("user_id", u.ID), zap.String("ip", ipAddress))

	return &auth.LoginResponse{
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtManager.Generator.TTL().Seconds()),
		ExpiresAt:   issued.ExpiresAt,
		User:        *u,
	}, nil
}

// ========== Logout ==========

// Logout drops the session and blacklists the token id.
func (s *AuthService) Logout(ctx context.Context, viewer *auth.Viewer) error {
	if viewer == nil {
		return xerrors.ErrUnauthorized
	}
	if s.sessions == nil {
		return nil
	}

	if err := s.sessions.InvalidateSession(ctx, viewer.UserID, viewer.JTI); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}
	if err := s.sessions.BlacklistToken(ctx, viewer.JTI, s.jwtManager.Generator.TTL()); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	s.logger.Info("user logged out", zap.Int64("user_id", viewer.UserID))
	return nil
}

// ========== Token Validation ==========

// ValidateToken resolves a bearer token into a viewer. Every rejection is
// reported as xerrors.ErrUnauthorized.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*auth.Viewer, error) {
	claims, err := s.jwtManager.Verifier.VerifyAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrUnauthorized, err)
	}

	if s.sessions != nil {
		blacklisted, err := s.sessions.IsTokenBlacklisted(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token: %w", err)
		}
		if blacklisted {
			return nil, fmt.Errorf("token has been revoked: %w", xerrors.ErrUnauthorized)
		}

		if _, err := s.sessions.GetSession(ctx, claims.UserID, claims.ID); err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				return nil, fmt.Errorf("session expired: %w", xerrors.ErrUnauthorized)
			}
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
	}

	return &auth.Viewer{UserID: claims.UserID, AccountType: claims.AccountType, JTI: claims.ID}, nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, viewer *auth.Viewer) (*user.User, error) {
	if viewer == nil {
		return nil, xerrors.ErrUnauthorized
	}
	u, err := s.users.FindByID(ctx, viewer.UserID)
	if err != nil {
		return nil, db.AsUnavailable(err)
	}
	return u, nil
}
