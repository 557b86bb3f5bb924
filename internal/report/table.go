package report

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/prettymuchbryce/tidydownloads/internal/organizer"
)

// AnalysisTable renders a scan report as a table with one row per category.
// Detailed reports add a row per listed file under its category.
func AnalysisTable(r *organizer.ScanReport) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.SetTitle(r.Dir)
	tw.AppendHeader(table.Row{"Categoría", "Archivos", "Tamaño (MB)"})

	for _, c := range r.Categories {
		tw.AppendRow(table.Row{c.Name, strconv.Itoa(c.Count), FormatMB(c.Size)})
		if !r.Detailed {
			continue
		}
		for _, f := range c.Largest {
			tw.AppendRow(table.Row{"  " + f.Name, "", FormatMB(f.Size)})
		}
		if hidden := c.Hidden(); hidden > 0 {
			tw.AppendRow(table.Row{"  ... y " + strconv.Itoa(hidden) + " archivos más", "", ""})
		}
	}

	tw.AppendFooter(table.Row{"Total", strconv.Itoa(r.TotalFiles), FormatMB(r.TotalSize)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})

	return tw.Render()
}
