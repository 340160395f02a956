package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/swiftship/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	cfg.DBPath = filepath.Join(t.TempDir(), "swiftship.sqlite3")
	return cfg
}

func TestEnsureAdminRunsOnce(t *testing.T) {
	a, err := New(testConfig(t))
	require.NoError(t, err)
	defer a.Close()
	ctx := context.Background()

	password, err := a.EnsureAdmin(ctx)
	require.NoError(t, err)
	assert.Len(t, password, 16)

	acct, err := a.Accounts.Login(ctx, a.Config.AdminEmail, password)
	require.NoError(t, err)
	assert.True(t, acct.IsAdmin())

	again, err := a.EnsureAdmin(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestSecretPersistsAcrossOpens(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	secret := first.Secret
	require.NoError(t, first.Close())

	second, err := New(cfg)
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, secret, second.Secret)
}

func TestRedisBrokerWiredWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisAddr = mr.Addr()

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Broker)
	assert.Equal(t, a.Broker, a.Ledger.Changes)
}

func TestGeneratePassword(t *testing.T) {
	p1, err := GeneratePassword(16)
	require.NoError(t, err)
	p2, err := GeneratePassword(16)
	require.NoError(t, err)
	assert.Len(t, p1, 16)
	assert.NotEqual(t, p1, p2)
}
