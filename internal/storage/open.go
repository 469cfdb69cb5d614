// Package storage selects and opens the configured vault.Store backend.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dimitrije/credential-vault/internal/config"
	"github.com/dimitrije/credential-vault/internal/database"
	"github.com/dimitrije/credential-vault/internal/storage/dynamo"
	"github.com/dimitrije/credential-vault/internal/storage/postgres"
	"github.com/dimitrije/credential-vault/internal/storage/sqlite"
	"github.com/dimitrije/credential-vault/internal/vault"
)

// Open connects to the backend named by cfg.Store and applies its
// migrations. The returned close func releases the backend's connections.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (vault.Store, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("using in-memory store, credentials will not survive a restart")
		return vault.NewMemoryStore(), func() {}, nil

	case config.StorePostgres:
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("postgres store ready")
		return postgres.NewStore(db), db.Close, nil

	case config.StoreSQLite:
		db, err := sqlite.NewDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := sqlite.RunMigrations(db.Writer); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("sqlite store ready", "path", cfg.SQLitePath)
		return sqlite.NewStore(db), func() { _ = db.Close() }, nil

	case config.StoreDynamoDB:
		client, err := dynamo.NewClient(ctx, dynamo.ClientConfig{
			Region:          cfg.DynamoDB.Region,
			Endpoint:        cfg.DynamoDB.Endpoint,
			AccessKeyID:     cfg.DynamoDB.AccessKeyID,
			SecretAccessKey: cfg.DynamoDB.SecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("dynamodb store ready", "table", cfg.DynamoDB.Table, "region", cfg.DynamoDB.Region)
		return dynamo.NewStore(client, cfg.DynamoDB.Table), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}
