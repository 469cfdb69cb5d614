package vault

import (
	"context"
	"sync"

	"github.com/dimitrije/credential-vault/internal/models"
)

// MemoryStore is a process-local Store. Mutations are serialized by a single
// mutex, which also gives each Mutate call all-or-nothing visibility.
type MemoryStore struct {
	mu      sync.Mutex
	records map[Identity][]models.Credential
	owner   Identity
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[Identity][]models.Credential)}
}

func (m *MemoryStore) Load(_ context.Context, id Identity) ([]models.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Credential, len(m.records[id]))
	copy(out, m.records[id])
	return out, nil
}

func (m *MemoryStore) Mutate(_ context.Context, id Identity, fn MutateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := append([]models.Credential(nil), m.records[id]...)
	next, err := fn(current)
	if err != nil {
		return err
	}
	m.records[id] = next
	return nil
}

func (m *MemoryStore) SetOwner(_ context.Context, id Identity) (Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner == "" {
		m.owner = id
	}
	return m.owner, nil
}

func (m *MemoryStore) Owner(_ context.Context) (Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner == "" {
		return "", ErrOwnerNotSet
	}
	return m.owner, nil
}
