package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/internal/pathutil"
)

var (
	configPath string
	logLevel   string
)

// errReported marks failures whose report was already printed.
var errReported = errors.New("operation failed")

var rootCmd = &cobra.Command{
	Use:   "tidydownloads",
	Short: "tidydownloads - Sort the downloads folder into category folders",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		SetupLogging(levelOr("warn"))
	},
}

func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command. SIGINT and SIGTERM cancel the running operation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// levelOr returns the --log-level flag, or fallback when it was not given.
func levelOr(fallback string) string {
	if logLevel != "" {
		return logLevel
	}
	return fallback
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", pathutil.MustDefaultConfigPath(), "path to config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
}
