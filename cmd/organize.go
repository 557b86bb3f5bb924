package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/internal/organizer"
	"github.com/prettymuchbryce/tidydownloads/internal/report"
	"github.com/prettymuchbryce/tidydownloads/internal/tools"
)

var (
	organizeDryRun     bool
	organizeCategories []string
	organizeTree       bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Move downloads into category folders (dry run by default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		org := newOrganizer(cfg)

		if organizeDryRun {
			fmt.Fprintln(cmd.ErrOrStderr(), "Dry-run mode enabled (pass --dry-run=false to move files)")
		}

		if !organizeTree {
			return runOperation(cmd, org, tools.Organize, tools.Args{
				DryRun:     organizeDryRun,
				Categories: organizeCategories,
			})
		}

		result, err := org.Organize(cmd.Context(), organizer.OrganizeOptions{
			DryRun:     organizeDryRun,
			Categories: organizeCategories,
		})
		if err != nil && result == nil {
			return printReport(cmd, report.OrganizeError(org.SourceDir(), err), err)
		}
		if treeErr := report.WriteOrganizeTree(cmd.OutOrStdout(), result); treeErr != nil {
			return treeErr
		}
		if err != nil {
			return printReport(cmd, report.OrganizeError(org.SourceDir(), err), err)
		}
		return nil
	},
}

func init() {
	organizeCmd.Flags().BoolVarP(&organizeDryRun, "dry-run", "n", true, "simulate moves without applying; use --dry-run=false to apply")
	organizeCmd.Flags().StringSliceVar(&organizeCategories, "category", nil, "only organize these categories (repeatable)")
	organizeCmd.Flags().BoolVar(&organizeTree, "tree", false, "render every move as a tree")
	rootCmd.AddCommand(organizeCmd)
}
