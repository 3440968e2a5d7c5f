package cmd

import (
	"fmt"

	"github.com/calvra/cellar/internal/repository"
	"github.com/spf13/cobra"
)

// LsCmd lists stored entries beneath a path prefix.
var LsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "Lists stored passwords",
	Long: `Lists the entries in the most recent committed state of the
repository whose names start with the given prefix. The prefix match is
literal, so "foo" matches both foo/bar and foobar. With no argument,
every entry is listed.`,
	Args: cobra.MaximumNArgs(1),
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

		raw := "/"
		if len(args) == 1 {
			raw = args[0]
		}
		prefix, err := repository.NewPath(repo, raw)
		if err != nil {
			return Logger.ErrorfAndReturn("invalid path %q: %v", raw, err)
		}

		return repo.List(prefix, func(p repository.Path) bool {
			fmt.Println(p.Relative())
			return true
		})
	},
}
