package cmd

import (
	"github.com/calvra/cellar/internal/repository"
	"github.com/calvra/cellar/internal/ui"
	"github.com/spf13/cobra"
)

// RmCmd removes a stored entry and commits the removal.
var RmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Removes a stored password",
	Args:  cobra.ExactArgs(1),
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

		if err := repo.Remove(path); err != nil {
			return Logger.ErrorfAndReturn("failed to remove %q: %v", path.Relative(), err)
		}

		cmd.Println(ui.Success.Sprint("✓") + " Removed " + ui.Path.Sprint(path.Relative()))
		return nil
	},
}
