package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/tidydownloads/internal/category"
	"github.com/prettymuchbryce/tidydownloads/internal/organizer"
	"github.com/prettymuchbryce/tidydownloads/internal/state"
)

var (
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Width(12)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	boxStyle       = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 4)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the configuration in use and how many downloads are waiting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		org := newOrganizer(cfg)
		out := cmd.OutOrStdout()

		var pending string
		scan, err := org.Scan(cmd.Context(), false)
		switch {
		case errors.Is(err, organizer.ErrNotFound):
			pending = warnStyle.Render("source folder does not exist")
		case err != nil:
			pending = warnStyle.Render(err.Error())
		case scan.TotalFiles == 0:
			pending = dimStyle.Render("none")
		default:
			pending = fmt.Sprintf("%d files (%s)", scan.TotalFiles, humanize.IBytes(uint64(scan.TotalSize)))
		}

		mode := "moves files"
		if cfg.Settings.DryRun {
			mode = warnStyle.Render("dry run forced by settings.dry_run")
		}

		if scan != nil && scan.TotalFiles > 0 {
			tip := fmt.Sprintf("%d downloads waiting.\n\nPreview with %s\nApply with %s",
				scan.TotalFiles,
				highlightStyle.Render("tidydownloads organize"),
				highlightStyle.Render("tidydownloads organize --dry-run=false"))
			fmt.Fprintln(out, boxStyle.Render(tip))
		}

		fmt.Fprintln(out, labelStyle.Render("config")+dimStyle.Render(path))
		fmt.Fprintln(out, labelStyle.Render("source")+cfg.SourceDir)
		fmt.Fprintln(out, labelStyle.Render("organized")+cfg.OrganizedRoot())
		fmt.Fprintln(out, labelStyle.Render("mode")+mode)
		fmt.Fprintln(out, labelStyle.Render("pending")+pending)
		fmt.Fprintln(out, labelStyle.Render("last watch")+lastRunLine(path, cfg.SourceDir))
		fmt.Fprintln(out, labelStyle.Render("categories"))
		for _, line := range categoryLines(org.Table()) {
			fmt.Fprintln(out, "  "+line)
		}
		return nil
	},
}

// lastRunLine describes the last watch-mode run recorded next to the config.
func lastRunLine(configPath, sourceDir string) string {
	st, err := state.LoadFrom(state.PathFor(configPath))
	if err != nil {
		return warnStyle.Render(err.Error())
	}
	run := st.Run(sourceDir)
	if run == nil || run.LastRunAt.IsZero() {
		return dimStyle.Render("never (start it with ") + highlightStyle.Render("tidydownloads watch") + dimStyle.Render(")")
	}

	line := fmt.Sprintf("%s (%s, %d files", humanize.Time(run.LastRunAt), formatDuration(run.LastDuration), run.FilesMoved)
	if run.ErrorCount > 0 {
		line += fmt.Sprintf(", %d errors", run.ErrorCount)
	}
	if run.DryRun {
		line += ", dry run"
	}
	return line + ")"
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
}

func categoryLines(table *category.Table) []string {
	var lines []string
	for _, rule := range table.Rules() {
		lines = append(lines, rule.Name+" "+dimStyle.Render(strings.Join(rule.Extensions, " ")))
	}
	return append(lines, category.Other+" "+dimStyle.Render("everything else"))
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
