package cmd

import (
	"fmt"
	"os"

	"github.com/calvra/cellar/internal/repository"
	"github.com/calvra/cellar/internal/utils"
	"github.com/spf13/cobra"
)

var (
	pwSet     bool
	pwKeyFile string
)

func init() {
	PwCmd.Flags().BoolVarP(&pwSet, "set", "s", false, "store a new value instead of retrieving")
	PwCmd.Flags().StringVarP(&pwKeyFile, "key", "k", "", "read the value to store from this file")
}

// PwCmd retrieves or stores a single password entry.
var PwCmd = &cobra.Command{
	Use:   "pw <path>",
	Short: "Retrieves or stores a password",
	Long: `Retrieves the entry at the given path and prints it to stdout.
With --set, prompts for a new value (asked twice) and stores it. With
--key, stores the contents of the given file instead of prompting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to start session: %v", err)
		}
		defer session.Close()

		repo, err := session.openRepository(false)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open repository: %v", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				Logger.Warnf("failed to close repository: %v", err)
			}
		}()

		path, err := repository.NewPath(repo, args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("invalid path %q: %v", args[0], err)
		}

		switch {
		case pwKeyFile != "":
			return storeFromFile(repo, path, pwKeyFile)
		case pwSet:
			return storeFromPrompt(repo, path)
		default:
			value, err := repo.Read(path)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read %q: %v", path.Relative(), err)
			}
			fmt.Println(value)
			return nil
		}
	},
}

func storeFromPrompt(repo *repository.Repository, path repository.Path) error {
	// The value to store is prompted with confirmation; the repository
	// prompts separately for the master passphrase.
	value, err := utils.TerminalPrompt{}.Prompt("New value: ", true)
	if err != nil {
		return Logger.ErrorfAndReturn("failed to read new value: %v", err)
	}

	if err := repo.Write(path, value); err != nil {
		return Logger.ErrorfAndReturn("failed to store %q: %v", path.Relative(), err)
	}
	Logger.Infof("Stored entry %s", path.Relative())
	return nil
}

func storeFromFile(repo *repository.Repository, path repository.Path, keyFile string) error {
	in, err := os.Open(keyFile)
	if err != nil {
		return Logger.ErrorfAndReturn("failed to open key file: %v", err)
	}
	defer in.Close()

	if err := repo.WriteFrom(path, in); err != nil {
		return Logger.ErrorfAndReturn("failed to store %q: %v", path.Relative(), err)
	}
	Logger.Infof("Stored entry %s from %s", path.Relative(), keyFile)
	return nil
}
