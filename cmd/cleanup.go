package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/internal/tools"
)

var cleanupDryRun bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove empty folders from the organized tree (dry run by default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cleanupDryRun {
			fmt.Fprintln(cmd.ErrOrStderr(), "Dry-run mode enabled (pass --dry-run=false to remove folders)")
		}
		return runOperation(cmd, newOrganizer(cfg), tools.Cleanup, tools.Args{DryRun: cleanupDryRun})
	},
}

func init() {
	cleanupCmd.Flags().BoolVarP(&cleanupDryRun, "dry-run", "n", true, "list folders without removing them; use --dry-run=false to apply")
	rootCmd.AddCommand(cleanupCmd)
}
