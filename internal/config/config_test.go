package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("VAULT_OWNER", "deployer")
	t.Setenv("VAULT_STORE", "memory")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "vault.db", cfg.SQLitePath)
	assert.Equal(t, "credential-vault", cfg.DynamoDB.Table)
	assert.Equal(t, "us-east-1", cfg.DynamoDB.Region)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, "deployer", cfg.VaultOwner)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("VAULT_STORE", "dynamodb")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, StoreDynamoDB, cfg.Store)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown store", map[string]string{"VAULT_STORE": "redis"}, `unknown VAULT_STORE "redis"`},
		{"postgres without url", map[string]string{"VAULT_STORE": "postgres", "DATABASE_URL": ""}, "DATABASE_URL is required"},
		{"bad expiry", map[string]string{"JWT_EXPIRY": "soon"}, "invalid JWT_EXPIRY"},
		{"negative expiry", map[string]string{"JWT_EXPIRY": "-1m"}, "invalid JWT_EXPIRY"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "invalid LOG_LEVEL"},
		{"bad rate", map[string]string{"RATE_LIMIT_RPS": "fast"}, "invalid RATE_LIMIT_RPS"},
		{"zero burst", map[string]string{"RATE_LIMIT_BURST": "0"}, "invalid RATE_LIMIT_BURST"},
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
		{"missing owner", map[string]string{"VAULT_OWNER": ""}, "VAULT_OWNER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
