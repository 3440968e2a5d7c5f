package cmd

import (
	"github.com/calvra/cellar/internal/ui"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// InitCmd creates a fresh password repository with an initial encryption
// header, or reports one that already exists.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes a password repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to start session: %v", err)
		}
		defer session.Close()

		figure.NewFigure("cellar", "", true).Print()

		spinner, cleanup := startSpinner("Initializing repository...", verbose)
		defer cleanup()

		repo, err := session.openRepository(true)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize repository: %v", err)
		}

		// Closing persists and commits the fresh encryption header.
		if err := repo.Close(); err != nil {
			return Logger.ErrorfAndReturn("failed to write encryption header: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Repository initialized at " + ui.Path.Sprint(repo.WorkDir()) + "\n" +
			ui.Info.Sprint("→") + " Store your first password with " + ui.Code.Sprint("cellar pw --set <path>")
		return nil
	},
}
