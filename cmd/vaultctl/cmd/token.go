package cmd

import (
	"fmt"

	"github.com/dimitrije/credential-vault/internal/services"
	"github.com/dimitrije/credential-vault/internal/vault"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "token <identity>",
		Short: "Mint an access token attributed to an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			token, err := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry).GenerateToken(vault.Identity(args[0]))
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			out := cmd.OutOrStdout()
			if quiet {
				fmt.Fprintln(out, token.AccessToken)
				return nil
			}

			fmt.Fprintf(out, "  %s %s\n", brand.Sprint("identity"), args[0])
			fmt.Fprintf(out, "  %s %s\n", brand.Sprint("expires "), token.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, token.AccessToken)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the token")
	return cmd
}
