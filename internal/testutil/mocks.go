package testutil

import (
	"context"

	"github.com/dimitrije/credential-vault/internal/models"
	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/stretchr/testify/mock"
)

// MockCredentialService mocks vault.Service
type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) AddCredentials(ctx context.Context, id vault.Identity, name, username, password, note string) error {
	args := m.Called(ctx, id, name, username, password, note)
	return args.Error(0)
}

func (m *MockCredentialService) UpdateCredentials(ctx context.Context, id vault.Identity, currentName, newName, newUsername, newPassword, newNote string) error {
	args := m.Called(ctx, id, currentName, newName, newUsername, newPassword, newNote)
	return args.Error(0)
}

func (m *MockCredentialService) DeleteCredentials(ctx context.Context, id vault.Identity, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockCredentialService) GetCredentials(ctx context.Context, id vault.Identity) ([]models.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Credential), args.Error(1)
}

func (m *MockCredentialService) Owner(ctx context.Context) (vault.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(vault.Identity), args.Error(1)
}
