package cmd

import (
	"errors"
	"fmt"

	"github.com/dimitrije/credential-vault/internal/config"
	"github.com/dimitrije/credential-vault/internal/storage"
	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations for the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			_, closeStore, err := storage.Open(cmd.Context(), cfg, quietLogger())
			if err != nil {
				return err
			}
			defer closeStore()

			switch cfg.Store {
			case config.StoreMemory, config.StoreDynamoDB:
				subtle.Fprintf(cmd.OutOrStdout(), "  %s store has no schema to migrate\n", cfg.Store)
			default:
				good.Fprintf(cmd.OutOrStdout(), "  %s migrations applied\n", cfg.Store)
			}
			return nil
		},
	}
}

func ownerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owner",
		Short: "Show the identity recorded as the vault owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, closeStore, err := storage.Open(cmd.Context(), cfg, quietLogger())
			if err != nil {
				return err
			}
			defer closeStore()

			owner, err := vault.NewService(store, quietLogger()).Owner(cmd.Context())
			if errors.Is(err, vault.ErrOwnerNotSet) {
				subtle.Fprintln(cmd.OutOrStdout(), "  vault owner is not set")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read owner: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", brand.Sprint("owner"), owner)
			return nil
		},
	}
}
