// Package cmd implements the vaultctl operator commands.
package cmd

import (
	"io"
	"log/slog"

	"github.com/dimitrije/credential-vault/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	subtle = color.New(color.FgHiBlack)
	brand  = color.New(color.FgHiGreen, color.Bold)
)

// loadConfig is swapped in tests.
var loadConfig = config.Load

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Operate a credential vault deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		tokenCmd(),
		migrateCmd(),
		ownerCmd(),
	)

	return rootCmd
}

// Execute runs the root command and prints any error in red.
func Execute() error {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(rootCmd.ErrOrStderr(), "  vaultctl: %v\n", err)
		return err
	}
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
