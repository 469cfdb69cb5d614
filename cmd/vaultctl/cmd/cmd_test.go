package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dimitrije/credential-vault/internal/config"
	"github.com/dimitrije/credential-vault/internal/services"
	"github.com/dimitrije/credential-vault/internal/storage"
	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	color.NoColor = true
	prev := loadConfig
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	t.Cleanup(func() { loadConfig = prev })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCmd_Quiet(t *testing.T) {
	useConfig(t, &config.Config{JWTSecret: "cli-secret", JWTExpiry: time.Minute})

	out, err := run(t, "token", "alice", "-q")
	require.NoError(t, err)

	claims, err := services.NewJWTService("cli-secret", time.Minute).ValidateAccessToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Identity)
}

func TestTokenCmd_RequiresIdentity(t *testing.T) {
	useConfig(t, &config.Config{JWTSecret: "cli-secret", JWTExpiry: time.Minute})

	_, err := run(t, "token")
	assert.Error(t, err)

	_, err = run(t, "token", "")
	assert.ErrorIs(t, err, vault.ErrIdentityRequired)
}

func TestMigrateCmd_Memory(t *testing.T) {
	useConfig(t, &config.Config{Store: config.StoreMemory})

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "memory store has no schema to migrate")
}

func TestMigrateAndOwnerCmd_SQLite(t *testing.T) {
	cfg := &config.Config{
		Store:      config.StoreSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "vault.db"),
	}
	useConfig(t, cfg)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite migrations applied")

	out, err = run(t, "owner")
	require.NoError(t, err)
	assert.Contains(t, out, "vault owner is not set")

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, quietLogger())
	require.NoError(t, err)
	_, err = vault.NewService(store, quietLogger()).Init(ctx, "deployer")
	closeStore()
	require.NoError(t, err)

	out, err = run(t, "owner")
	require.NoError(t, err)
	assert.Contains(t, out, "owner deployer")
}
