// internal/service/auth/auth.go
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"cprice-service/internal/domain/auth"
	"cprice-service/internal/domain/user"
	xerrors "cprice-service/internal/pkg/errors"
	"cprice-service/internal/pkg/jwt"
	"cprice-service/internal/pkg/permission"
	"cprice-service/internal/pkg/ratelimit"

	"go.uber.org/zap"
)

// Repository is the user store surface login needs.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	Permissions(ctx context.Context, userID string) ([]permission.Grant, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type AuthService struct {
	repo    Repository
	tokens  *jwt.Manager
	limiter *ratelimit.Limiter
	logger  *zap.Logger
}

func NewAuthService(repo Repository, tokens *jwt.Manager, limiter *ratelimit.Limiter, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:    repo,
		tokens:  tokens,
		limiter: limiter,
		logger:  logger,
	}
}

// Login verifies credentials and issues a token carrying the user's role
// and permission grants. Failed and unknown-user attempts share the same
// error so usernames cannot be probed.
func (s *AuthService) Login(ctx context.Context, ip string, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if s.limiter != nil {
		allowed, remaining, err := s.limiter.CheckLoginAttempt(ctx, ip, req.Username)
		if err != nil {
			// Redis being down must not lock everyone out.
			s.logger.Warn("login rate limit check failed", zap.Error(err))
		} else if !allowed {
			s.logger.Warn("login rate limited",
				zap.String("ip", ip),
				zap.String("username", req.Username),
				zap.Int64("remaining", remaining),
			)
			return nil, xerrors.ErrRateLimited
		}
	}

	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, err
	}

	if !u.IsActive {
		s.logger.Info("login rejected for deactivated user", zap.String("username", req.Username))
		return nil, xerrors.ErrUnauthorized
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Info("login rejected", zap.String("username", req.Username))
		return nil, xerrors.ErrUnauthorized
	}

	grants, err := s.repo.Permissions(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Permissions = grants

	token, jti, err := s.tokens.Generate(u.ID, u.Username, u.Role, grants)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.ResetLoginAttempts(ctx, ip, req.Username); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	s.logger.Info("login succeeded",
		zap.String("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("jti", jti),
	)

	u.PasswordHash = ""
	return &auth.LoginResponse{Token: token, User: *u}, nil
}

// Me returns the caller's profile with current grants, for session refresh
// on the frontend.
func (s *AuthService) Me(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, xerrors.ErrUnauthorized
	}

	grants, err := s.repo.Permissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Permissions = grants
	return u, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *auth.ChangePasswordRequest) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}
