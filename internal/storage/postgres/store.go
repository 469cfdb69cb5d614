// Package postgres stores credential vaults in PostgreSQL. Each identity
// owns one row whose records column holds the ordered sequence as a JSONB
// array.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dimitrije/credential-vault/internal/database"
	"github.com/dimitrije/credential-vault/internal/models"
	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/jackc/pgx/v5"
)

var _ vault.Store = (*Store)(nil)

type Store struct {
	db *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context, id vault.Identity) ([]models.Credential, error) {
	var raw []byte
	err := s.db.Pool.QueryRow(ctx, `
		SELECT records FROM credential_vaults WHERE identity = $1
	`, string(id)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []models.Credential{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	return decodeRecords(raw)
}

// Mutate serializes writers per identity with a transaction-scoped advisory
// lock, so a row that does not exist yet is covered too.
func (s *Store) Mutate(ctx context.Context, id vault.Identity, fn vault.MutateFunc) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, string(id)); err != nil {
		return fmt.Errorf("failed to lock vault: %w", err)
	}

	var raw []byte
	err = tx.QueryRow(ctx, `
		SELECT records FROM credential_vaults WHERE identity = $1
	`, string(id)).Scan(&raw)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	current, err := decodeRecords(raw)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	encoded, err := encodeRecords(next)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO credential_vaults (identity, records)
		VALUES ($1, $2)
		ON CONFLICT (identity) DO UPDATE
		SET records = EXCLUDED.records, version = credential_vaults.version + 1, updated_at = NOW()
	`, string(id), encoded)
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetOwner inserts the owner row once. On conflict the no-op update lets
// RETURNING yield the identity that is already stored.
func (s *Store) SetOwner(ctx context.Context, id vault.Identity) (vault.Identity, error) {
	var owner string
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO vault_owner (identity)
		VALUES ($1)
		ON CONFLICT (singleton) DO UPDATE SET singleton = vault_owner.singleton
		RETURNING identity
	`, string(id)).Scan(&owner)
	if err != nil {
		return "", err
	}
	return vault.Identity(owner), nil
}

func (s *Store) Owner(ctx context.Context) (vault.Identity, error) {
	var owner string
	err := s.db.Pool.QueryRow(ctx, `SELECT identity FROM vault_owner`).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", vault.ErrOwnerNotSet
	}
	if err != nil {
		return "", err
	}
	return vault.Identity(owner), nil
}

func decodeRecords(raw []byte) ([]models.Credential, error) {
	records := []models.Credential{}
	if len(raw) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return records, nil
}

func encodeRecords(records []models.Credential) ([]byte, error) {
	if records == nil {
		records = []models.Credential{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}
	return raw, nil
}
