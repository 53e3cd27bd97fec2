package auth

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cprice-service/internal/domain/auth"
	"cprice-service/internal/domain/user"
	xerrors "cprice-service/internal/pkg/errors"
	"cprice-service/internal/pkg/jwt"
	"cprice-service/internal/pkg/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	users  map[string]*user.User
	grants map[string][]permission.Grant
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Permissions(_ context.Context, userID string) ([]permission.Grant, error) {
	return f.grants[userID], nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func newTestService(t *testing.T) (*AuthService, *fakeUserRepo, *jwt.Manager) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{
		users: map[string]*user.User{
			"u1": {
				ID:           "u1",
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: string(hash),
				Role:         user.RoleUser,
				IsActive:     true,
			},
		},
		grants: map[string][]permission.Grant{
			"u1": {{Module: permission.ModuleInquiries, Action: permission.ActionView}},
		},
	}

	tokens, err := jwt.NewManager(jwt.Config{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	return NewAuthService(repo, tokens, nil, zap.NewNop()), repo, tokens
}

func TestLoginIssuesTokenWithGrants(t *testing.T) {
	svc, _, tokens := newTestService(t)

	resp, err := svc.Login(context.Background(), "127.0.0.1", &auth.LoginRequest{
		Username: "alice",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash)
	require.Len(t, resp.User.Permissions, 1)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.True(t, claims.PermissionSet().Has(permission.ModuleInquiries, permission.ActionView))
	assert.False(t, claims.IsAdmin())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "127.0.0.1", &auth.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "127.0.0.1", &auth.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	// Same error as a bad password, so usernames cannot be probed.
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	svc, repo, _ := newTestService(t)

	err := svc.ChangePassword(context.Background(), "u1", &auth.ChangePasswordRequest{
		CurrentPassword: "correct-horse",
		NewPassword:     "battery-staple",
	})
	require.NoError(t, err)

	stored := repo.users["u1"].PasswordHash
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("battery-staple")))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.ChangePassword(context.Background(), "u1", &auth.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "battery-staple",
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}
