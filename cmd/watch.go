package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/daemon"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the downloads folder and organize new files as they arrive",
	Long: `Start a long-running process that organizes the downloads folder once,
then again every time new files settle in it.

Bursts of events are debounced (watch.debounce in the config), events caused
by the organizer's own moves are ignored, and SIGHUP reloads the config.
Shuts down gracefully on SIGINT/SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath(cmd)
		if err != nil {
			return err
		}
		return daemon.Run(cmd.Context(), path, afero.NewOsFs(), func(level string) {
			SetupLogging(levelOr(level))
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
