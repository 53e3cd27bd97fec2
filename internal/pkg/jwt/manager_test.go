package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cprice-service/internal/pkg/permission"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:   "test-secret",
		Issuer:   "cprice",
		Audience: "cprice-admin",
		TTL:      ttl,
	})
	require.NoError(t, err)
	return m
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour)

	grants := []permission.Grant{
		{Module: permission.ModuleInquiries, Action: permission.ActionView},
	}
	token, jti, err := m.Generate("user_1", "alice", "user", grants)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, jti, claims.ID)
	assert.False(t, claims.IsAdmin())
	assert.True(t, claims.PermissionSet().Has(permission.ModuleInquiries, permission.ActionView))
	assert.False(t, claims.PermissionSet().Has(permission.ModuleInquiries, permission.ActionUpdate))
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := newTestManager(t, -time.Minute)

	token, _, err := m.Generate("user_1", "alice", "user", nil)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := newTestManager(t, time.Hour)
	other, err := NewManager(Config{Secret: "other-secret"})
	require.NoError(t, err)

	token, _, err := m.Generate("user_1", "alice", "admin", nil)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	assert.Error(t, err)
}
