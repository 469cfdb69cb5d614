package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS vault_owner (
		singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
		identity TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS credential_vaults (
		identity TEXT PRIMARY KEY,
		records JSONB NOT NULL DEFAULT '[]',
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// Records must stay an ordered array; position is the array index.
	`DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_name = 'credential_vaults' AND constraint_name = 'credential_vaults_records_array'
		) THEN
			ALTER TABLE credential_vaults
				ADD CONSTRAINT credential_vaults_records_array CHECK (jsonb_typeof(records) = 'array');
		END IF;
	END $$`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
