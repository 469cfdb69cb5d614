package handlers

import (
	"context"

	"github.com/dimitrije/credential-vault/internal/models"
	"github.com/dimitrije/credential-vault/internal/vault"
)

// CredentialServiceInterface defines the methods used by handlers from vault.Service
type CredentialServiceInterface interface {
	AddCredentials(ctx context.Context, id vault.Identity, name, username, password, note string) error
	UpdateCredentials(ctx context.Context, id vault.Identity, currentName, newName, newUsername, newPassword, newNote string) error
	DeleteCredentials(ctx context.Context, id vault.Identity, name string) error
	GetCredentials(ctx context.Context, id vault.Identity) ([]models.Credential, error)
	Owner(ctx context.Context) (vault.Identity, error)
}
