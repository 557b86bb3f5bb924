package cmd

import (
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/internal/tools"
)

var structureCmd = &cobra.Command{
	Use:   "structure [base]",
	Short: "Create the category folders under base (default: the downloads folder)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var base string
		if len(args) == 1 {
			base = args[0]
		}
		return runOperation(cmd, newOrganizer(cfg), tools.CreateStructure, tools.Args{BaseFolder: base})
	},
}

func init() {
	rootCmd.AddCommand(structureCmd)
}
