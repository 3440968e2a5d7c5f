package cmd

import (
	"fmt"

	"github.com/calvra/cellar/internal/configs"
	"github.com/calvra/cellar/internal/ui"
	"github.com/spf13/cobra"
)

var configSetValue string

func init() {
	ConfigCmd.Flags().StringVarP(&configSetValue, "set", "s", "", "set the given configuration key to this value")
}

// ConfigCmd shows or updates the on-disk configuration store.
var ConfigCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Shows or sets configuration values",
	Long: `Shows the configuration store, or a single key when one is given.
With --set, updates the given key. The only settable key is
default_repository, the repository used when --repository is omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to start session: %v", err)
		}
		defer session.Close()

		config := session.configLifecycle.Config()

		if configSetValue != "" {
			if len(args) == 0 {
				return Logger.ErrorfAndReturn("--set requires a configuration key")
			}
			switch args[0] {
			case "default_repository":
				config.DefaultRepository = configSetValue
			default:
				return Logger.ErrorfAndReturn("unknown configuration key %q", args[0])
			}
			if err := configs.SaveConfig(config); err != nil {
				return Logger.ErrorfAndReturn("failed to save config: %v", err)
			}
			fmt.Println(ui.Success.Sprint("✓") + " Set " + args[0] + " to " + ui.Highlight.Sprint(configSetValue))
			return nil
		}

		if len(args) == 1 {
			switch args[0] {
			case "default_repository":
				fmt.Println(config.DefaultRepository)
			case "installation_uuid":
				fmt.Println(config.Installation.UUID)
			default:
				return Logger.ErrorfAndReturn("unknown configuration key %q", args[0])
			}
			return nil
		}

		fmt.Println("default_repository = " + ui.Highlight.Sprint(config.DefaultRepository))
		fmt.Println("installation_uuid = " + ui.Muted.Sprint(config.Installation.UUID))
		return nil
	},
}
