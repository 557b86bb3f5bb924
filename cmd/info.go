package cmd

import (
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/internal/tools"
)

var infoCmd = &cobra.Command{
	Use:   "info <filename>",
	Short: "Show details and the suggested destination of one file in the downloads folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runOperation(cmd, newOrganizer(cfg), tools.FileInfo, tools.Args{Filename: args[0]})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
