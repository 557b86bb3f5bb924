package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/internal/server"
	"github.com/prettymuchbryce/tidydownloads/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the organizer tools over MCP on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		srv := server.New(tools.NewRunner(newOrganizer(cfg)), rootCmd.Version, slog.Default())
		if err := srv.Run(cmd.Context()); err != nil && cmd.Context().Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
