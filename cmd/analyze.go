package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/internal/report"
	"github.com/prettymuchbryce/tidydownloads/internal/tools"
)

var (
	analyzeDetails bool
	analyzeTable   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show file counts and sizes per category in the downloads folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		org := newOrganizer(cfg)

		if !analyzeTable {
			return runOperation(cmd, org, tools.Analyze, tools.Args{ShowDetails: analyzeDetails})
		}

		scan, err := org.Scan(cmd.Context(), analyzeDetails)
		if err != nil {
			return printReport(cmd, report.AnalysisError(org.SourceDir(), err), err)
		}
		if scan.TotalFiles == 0 {
			return printReport(cmd, report.Analysis(scan), nil)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.AnalysisTable(scan))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVarP(&analyzeDetails, "details", "d", false, "list the largest files of each category")
	analyzeCmd.Flags().BoolVar(&analyzeTable, "table", false, "render the report as a table")
	rootCmd.AddCommand(analyzeCmd)
}
