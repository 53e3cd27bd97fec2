// internal/service/user/user.go
package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"cprice-service/internal/domain/user"
	xerrors "cprice-service/internal/pkg/errors"
	"cprice-service/internal/pkg/permission"
	"cprice-service/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type UserService struct {
	repo   *postgres.UserRepository
	logger *zap.Logger
}

func NewUserService(repo *postgres.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create registers a back-office account with its permission grants.
func (s *UserService) Create(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "username or email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = user.RoleUser
	}

	u := &user.User{
		ID:           ulid.Make().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u, req.PermissionIDs); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("id", u.ID), zap.String("username", u.Username))

	u.PasswordHash = ""
	return u, nil
}

// Get retrieves one user with grants attached.
func (s *UserService) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	grants, err := s.repo.Permissions(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Permissions = grants
	return u, nil
}

// Update mutates account fields. A non-nil PermissionIDs replaces the
// whole grant set; nil leaves it untouched.
func (s *UserService) Update(ctx context.Context, id string, req *user.UpdateUserRequest) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u, req.PermissionIDs); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.String("id", id))
	return s.Get(ctx, id)
}

// ResetPassword sets a new password without requiring the old one.
// Admin-only; the route guard enforces that.
func (s *UserService) ResetPassword(ctx context.Context, id string, req *user.ResetPasswordRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("id", id))
	return nil
}

// Deactivate soft-disables the account. Their assigned inquiries stay
// assigned until the expiry sweep returns them to the pool.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info("user deactivated", zap.String("id", id))
	return nil
}

// List retrieves users with filters, hashes stripped.
func (s *UserService) List(ctx context.Context, filters *user.ListFilters) (*user.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = defaultPageSize
	}
	if filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}

	users, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	for n := range users {
		users[n].PasswordHash = ""
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))
	return &user.ListResponse{
		Data:       users,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// PermissionDefinitions returns the global catalogue for the grant picker.
func (s *UserService) PermissionDefinitions(ctx context.Context) ([]user.PermissionDefinition, error) {
	return s.repo.PermissionDefinitions(ctx)
}

// Grants loads a user's current grant list.
func (s *UserService) Grants(ctx context.Context, userID string) ([]permission.Grant, error) {
	return s.repo.Permissions(ctx, userID)
}
