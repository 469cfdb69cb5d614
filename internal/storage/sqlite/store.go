// Package sqlite stores credential vaults in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dimitrije/credential-vault/internal/models"
	"github.com/dimitrije/credential-vault/internal/vault"
)

// Compile-time interface satisfaction check.
var _ vault.Store = (*Store)(nil)

type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context, id vault.Identity) ([]models.Credential, error) {
	const query = `SELECT records FROM credential_vaults WHERE identity = ?`
	var raw string
	err := s.db.Reader.QueryRowContext(ctx, query, string(id)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Credential{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load credentials for %q: %w", id, err)
	}
	return decodeRecords(raw)
}

// Mutate runs on the single writer connection, so the read-modify-write is
// never interleaved with another mutation.
func (s *Store) Mutate(ctx context.Context, id vault.Identity, fn vault.MutateFunc) error {
	tx, err := s.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT records FROM credential_vaults WHERE identity = ?`, string(id)).Scan(&raw)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("load credentials for %q: %w", id, err)
	}

	current, err := decodeRecords(raw)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if next == nil {
		next = []models.Credential{}
	}
	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	const upsert = `INSERT INTO credential_vaults (identity, records) VALUES (?, ?)
		ON CONFLICT (identity) DO UPDATE
		SET records = excluded.records, version = version + 1, updated_at = CURRENT_TIMESTAMP`
	if _, err := tx.ExecContext(ctx, upsert, string(id), string(encoded)); err != nil {
		return fmt.Errorf("save credentials for %q: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) SetOwner(ctx context.Context, id vault.Identity) (vault.Identity, error) {
	const insert = `INSERT OR IGNORE INTO vault_owner (singleton, identity) VALUES (1, ?)`
	if _, err := s.db.Writer.ExecContext(ctx, insert, string(id)); err != nil {
		return "", fmt.Errorf("set owner: %w", err)
	}
	return s.owner(ctx, s.db.Writer)
}

func (s *Store) Owner(ctx context.Context) (vault.Identity, error) {
	return s.owner(ctx, s.db.Reader)
}

func (s *Store) owner(ctx context.Context, conn *sql.DB) (vault.Identity, error) {
	var owner string
	err := conn.QueryRowContext(ctx, `SELECT identity FROM vault_owner WHERE singleton = 1`).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", vault.ErrOwnerNotSet
	}
	if err != nil {
		return "", fmt.Errorf("get owner: %w", err)
	}
	return vault.Identity(owner), nil
}

func decodeRecords(raw string) ([]models.Credential, error) {
	records := []models.Credential{}
	if raw == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	return records, nil
}
