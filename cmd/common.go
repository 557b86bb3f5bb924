package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/internal/config"
	"github.com/prettymuchbryce/tidydownloads/internal/fs"
	"github.com/prettymuchbryce/tidydownloads/internal/organizer"
	"github.com/prettymuchbryce/tidydownloads/internal/pathutil"
	"github.com/prettymuchbryce/tidydownloads/internal/tools"
)

// resolveConfigPath returns the config path to load, creating the default
// config on first use when --config was not given.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("config") {
		return pathutil.ExpandTilde(configPath), nil
	}
	return config.EnsureDefaultConfig(configPath)
}

// loadConfig loads the config and applies its log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	SetupLogging(levelOr(cfg.Logging.Level))
	return cfg, nil
}

func newOrganizer(cfg *config.Config) *organizer.Organizer {
	return organizer.New(cfg, fs.NewReal())
}

// runOperation executes op and prints its report.
func runOperation(cmd *cobra.Command, org *organizer.Organizer, op tools.Operation, args tools.Args) error {
	text, err := tools.NewRunner(org).Run(cmd.Context(), op, args)
	return printReport(cmd, text, err)
}

// printReport writes text to stdout, or to stderr when err is set.
func printReport(cmd *cobra.Command, text string, err error) error {
	var w io.Writer = cmd.OutOrStdout()
	if err != nil {
		w = cmd.ErrOrStderr()
	}
	fmt.Fprintln(w, text)
	if err != nil {
		return errReported
	}
	return nil
}
