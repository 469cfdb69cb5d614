package main

import (
	"os"

	"github.com/dimitrije/credential-vault/cmd/vaultctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
