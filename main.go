package main

import (
	"os"

	"github.com/calvra/cellar/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cellar",
	Short: "Cellar - A versioned, encrypted password store.",
	Long: `Cellar keeps each password as an individually encrypted file inside a
git-versioned repository, so every change is committed and recoverable.

Entries are encrypted with two CBC layers (Serpent-256 inside, AES-256
outside) under a key derived from your passphrase with scrypt; the salt
and cost parameters live in the repository's encryption header.

Run 'cellar help <command>' for more details on a specific command.
`,
	SilenceUsage: true,
}

func main() {
	cmd.RegisterPersistentFlags(rootCmd)
	rootCmd.AddCommand(
		cmd.InitCmd,
		cmd.ConfigCmd,
		cmd.LsCmd,
		cmd.PwCmd,
		cmd.RmCmd,
		cmd.GenerateCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
