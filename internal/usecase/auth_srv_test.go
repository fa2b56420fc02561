package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuth(t *testing.T, local *memLocal) AuthService {
	t.Helper()
	return NewAuthService(local, "admin", "syndl2025", zap.NewNop())
}

func TestAuthLogin(t *testing.T) {
	auth := newTestAuth(t, newMemLocal())

	token, ok := auth.Login("admin", "syndl2025")
	require.True(t, ok)
	assert.NotEmpty(t, token)
	assert.True(t, auth.IsLoggedIn(token))
}

func TestAuthLoginRejected(t *testing.T) {
	auth := newTestAuth(t, newMemLocal())

	_, ok := auth.Login("admin", "wrong")
	assert.False(t, ok)

	_, ok = auth.Login("root", "syndl2025")
	assert.False(t, ok)
}

func TestAuthLogout(t *testing.T) {
	auth := newTestAuth(t, newMemLocal())

	token, ok := auth.Login("admin", "syndl2025")
	require.True(t, ok)

	auth.Logout(token)
	assert.False(t, auth.IsLoggedIn(token))
}

func TestAuthChangePassword(t *testing.T) {
	local := newMemLocal()
	auth := newTestAuth(t, local)
	ctx := context.Background()

	require.NoError(t, auth.ChangePassword(ctx, "newsecret", "newsecret"))

	_, ok := auth.Login("admin", "syndl2025")
	assert.False(t, ok, "old password must stop working")

	_, ok = auth.Login("admin", "newsecret")
	assert.True(t, ok)

	// The new password survives a restart via the local store.
	restarted := newTestAuth(t, local)
	_, ok = restarted.Login("admin", "newsecret")
	assert.True(t, ok)
}

func TestAuthChangePasswordRejections(t *testing.T) {
	local := newMemLocal()
	auth := newTestAuth(t, local)
	ctx := context.Background()

	err := auth.ChangePassword(ctx, "abcdef", "ghijkl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")

	err = auth.ChangePassword(ctx, "short", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")

	// A rejected change writes nothing.
	local.mu.Lock()
	assert.NotContains(t, local.kv, "syndl_admin_password")
	local.mu.Unlock()

	_, ok := auth.Login("admin", "syndl2025")
	assert.True(t, ok, "credential must be untouched after rejection")
}
