package cmd

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// SetupLogging configures slog with charmbracelet/log for colorful output.
// Logs always go to stderr; when stderr is not a terminal they are written as logfmt.
func SetupLogging(levelStr string) {
	var level log.Level
	switch levelStr {
	case "debug":
		level = log.DebugLevel
	case "warn":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	default:
		level = log.InfoLevel
	}

	opts := log.Options{
		Level:           level,
		ReportTimestamp: true,
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		opts.Formatter = log.LogfmtFormatter
	}

	slog.SetDefault(slog.New(log.NewWithOptions(os.Stderr, opts)))
}
