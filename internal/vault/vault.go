// Package vault keeps an ordered list of credential records per caller
// identity. Every operation is scoped to the identity passed in by the
// caller; the package never derives or verifies it.
package vault

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dimitrije/credential-vault/internal/models"
)

// Identity is the opaque, trusted key of a caller's partition.
type Identity string

// MutateFunc receives the identity's current sequence and returns the
// sequence to commit. Returning an error aborts the commit.
type MutateFunc func(records []models.Credential) ([]models.Credential, error)

// Store persists the identity -> sequence mapping and the owner metadata.
// Mutate must commit the result of fn atomically and write nothing when fn
// returns an error.
type Store interface {
	Load(ctx context.Context, id Identity) ([]models.Credential, error)
	Mutate(ctx context.Context, id Identity, fn MutateFunc) error
	SetOwner(ctx context.Context, id Identity) (Identity, error)
	Owner(ctx context.Context) (Identity, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Init records creator as the vault owner. The owner is written once; later
// calls return the identity stored by the first one.
func (s *Service) Init(ctx context.Context, creator Identity) (Identity, error) {
	if creator == "" {
		return "", ErrIdentityRequired
	}
	owner, err := s.store.SetOwner(ctx, creator)
	if err != nil {
		return "", fmt.Errorf("failed to record vault owner: %w", err)
	}
	return owner, nil
}

// Owner returns the identity recorded at creation. It grants no access.
func (s *Service) Owner(ctx context.Context) (Identity, error) {
	return s.store.Owner(ctx)
}

func (s *Service) AddCredentials(ctx context.Context, id Identity, name, username, password, note string) error {
	if id == "" {
		return ErrIdentityRequired
	}
	switch {
	case name == "":
		return ErrNameRequired
	case username == "":
		return ErrUsernameRequired
	case password == "":
		return ErrPasswordRequired
	}

	record := models.Credential{Name: name, Username: username, Password: password, Note: note}
	err := s.store.Mutate(ctx, id, func(records []models.Credential) ([]models.Credential, error) {
		return appendRecord(records, record), nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("credentials added", "identity", id, "name", name)
	return nil
}

// UpdateCredentials overwrites the first record named currentName in place.
// An unmatched currentName returns ErrNotFound.
func (s *Service) UpdateCredentials(ctx context.Context, id Identity, currentName, newName, newUsername, newPassword, newNote string) error {
	if id == "" {
		return ErrIdentityRequired
	}
	switch {
	case currentName == "":
		return ErrCurrentNameRequired
	case newName == "":
		return ErrNewNameRequired
	case newUsername == "":
		return ErrNewUsernameRequired
	case newPassword == "":
		return ErrNewPasswordRequired
	}

	record := models.Credential{Name: newName, Username: newUsername, Password: newPassword, Note: newNote}
	err := s.store.Mutate(ctx, id, func(records []models.Credential) ([]models.Credential, error) {
		i := indexOf(records, currentName)
		if i < 0 {
			return nil, ErrNotFound
		}
		return replaceAt(records, i, record), nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("credentials updated", "identity", id, "name", currentName, "new_name", newName)
	return nil
}

// DeleteCredentials removes the first record named name; later records move
// down one position.
func (s *Service) DeleteCredentials(ctx context.Context, id Identity, name string) error {
	if id == "" {
		return ErrIdentityRequired
	}
	if name == "" {
		return ErrNameRequired
	}

	err := s.store.Mutate(ctx, id, func(records []models.Credential) ([]models.Credential, error) {
		i := indexOf(records, name)
		if i < 0 {
			return nil, ErrNotFound
		}
		return removeAt(records, i), nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("credentials deleted", "identity", id, "name", name)
	return nil
}

// GetCredentials returns the caller's records in insertion order. The result
// is never nil.
func (s *Service) GetCredentials(ctx context.Context, id Identity) ([]models.Credential, error) {
	if id == "" {
		return nil, ErrIdentityRequired
	}
	records, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.Credential{}
	}
	return records, nil
}
