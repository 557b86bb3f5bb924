package organizer

import (
	"context"
	"sort"

	"github.com/dustin/go-humanize"
)

// largestPerCategory is how many files a detailed scan keeps per category.
const largestPerCategory = 5

// ScanReport summarizes the files directly inside the source directory.
type ScanReport struct {
	Dir        string
	TotalFiles int
	TotalSize  int64
	// Categories is sorted by name.
	Categories []CategoryStats
	Detailed   bool
}

// CategoryStats aggregates the files of one category.
type CategoryStats struct {
	Name  string
	Count int
	Size  int64
	// Largest holds up to five files, largest first, when the scan is detailed.
	Largest []FileRecord
}

// Hidden returns how many files of the category are not listed in Largest.
func (c CategoryStats) Hidden() int {
	return c.Count - len(c.Largest)
}

// Scan classifies the files in the source directory and totals them per category.
func (o *Organizer) Scan(ctx context.Context, detailed bool) (*ScanReport, error) {
	log := o.runLogger("scan")

	files, err := o.listFiles(o.fs, o.cfg.SourceDir, log)
	if err != nil {
		log.Error("scan failed", "dir", o.cfg.SourceDir, "error", err)
		return nil, err
	}

	report := &ScanReport{Dir: o.cfg.SourceDir, Detailed: detailed}
	byCategory := make(map[string][]FileRecord)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		byCategory[f.Category] = append(byCategory[f.Category], f)
		report.TotalFiles++
		report.TotalSize += f.Size
	}

	for name, records := range byCategory {
		stats := CategoryStats{Name: name, Count: len(records)}
		for _, r := range records {
			stats.Size += r.Size
		}
		if detailed {
			stats.Largest = largest(records, largestPerCategory)
		}
		report.Categories = append(report.Categories, stats)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].Name < report.Categories[j].Name
	})

	log.Info("scan complete",
		"dir", o.cfg.SourceDir,
		"files", report.TotalFiles,
		"size", humanize.Bytes(uint64(report.TotalSize)),
		"categories", len(report.Categories))
	return report, nil
}

// largest returns the n biggest records, size descending and name ascending on ties.
func largest(records []FileRecord, n int) []FileRecord {
	sorted := make([]FileRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
