package organizer

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/prettymuchbryce/tidydownloads/internal/category"
	"github.com/prettymuchbryce/tidydownloads/internal/fs"
)

// OrganizeOptions controls one organize run.
type OrganizeOptions struct {
	DryRun bool
	// Categories limits the run to these category names. Empty means all.
	Categories []string
}

// MoveOutcome records what happened to one file.
// Err is nil when the file was moved (or would be, in a dry run).
type MoveOutcome struct {
	OriginalPath string
	TargetPath   string
	Category     string
	Err          error
}

// OrganizeResult is the outcome of an organize run.
type OrganizeResult struct {
	Source string
	DryRun bool
	// Scanned counts the files found before the category filter was applied.
	Scanned int
	// Skipped counts files left alone by the category filter.
	Skipped int
	Moved   []MoveOutcome
	Errors  []MoveOutcome
}

// Organize moves every file in the source directory into its category folder.
// A per-file failure is recorded in Errors and the batch continues.
// If ctx is cancelled between files, the partial result is returned with ctx.Err().
func (o *Organizer) Organize(ctx context.Context, opts OrganizeOptions) (*OrganizeResult, error) {
	log := o.runLogger("organize")
	dryRun := opts.DryRun || o.cfg.Settings.DryRun
	source := o.cfg.SourceDir

	release, err := o.acquire(ctx, source, log)
	if err != nil {
		return nil, err
	}
	defer release()

	files, err := o.listFiles(o.fs, source, log)
	if err != nil {
		log.Error("organize failed", "dir", source, "error", err)
		return nil, err
	}

	target := o.fs
	if dryRun {
		target = o.fs.DryRun()
	}

	filter := o.categoryFilter(opts.Categories, log)
	result := &OrganizeResult{Source: source, DryRun: dryRun, Scanned: len(files)}
	now := o.now()
	var movedBytes int64

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			log.Warn("organize cancelled", "moved", len(result.Moved), "errors", len(result.Errors))
			return result, err
		}

		if len(filter) > 0 && !filter[f.Category] {
			result.Skipped++
			continue
		}

		outcome := o.moveOne(target, f, source, now)
		if outcome.Err != nil {
			log.Error("failed to organize file", "path", f.Path, "error", outcome.Err)
			result.Errors = append(result.Errors, outcome)
			continue
		}

		o.logOutcome(ctx, log, outcome, dryRun)
		movedBytes += f.Size
		result.Moved = append(result.Moved, outcome)
	}

	log.Info("organize complete",
		"dir", source,
		"dry_run", dryRun,
		"moved", len(result.Moved),
		"errors", len(result.Errors),
		"skipped", result.Skipped,
		"size", humanize.Bytes(uint64(movedBytes)))
	return result, nil
}

// moveOne resolves, names and moves a single file on target.
func (o *Organizer) moveOne(target fs.FileSystem, f FileRecord, source string, now time.Time) MoveOutcome {
	outcome := MoveOutcome{OriginalPath: f.Path, Category: f.Category}

	dir, err := o.resolveAt(f.Path, source, now)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	path, err := target.UniqueName(dir, f.Name)
	if err != nil {
		outcome.Err = wrapErr(ErrIOFailure, err)
		return outcome
	}
	if err := target.MkdirAll(dir, 0o755); err != nil {
		outcome.Err = wrapErr(ErrIOFailure, err)
		return outcome
	}
	if err := target.Move(f.Path, path); err != nil {
		outcome.Err = wrapErr(ErrIOFailure, err)
		return outcome
	}

	outcome.TargetPath = path
	return outcome
}

// categoryFilter builds the set of NFC-normalized category names to keep.
func (o *Organizer) categoryFilter(names []string, log *slog.Logger) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	filter := make(map[string]bool, len(names))
	for _, name := range names {
		n := category.NormalizeName(name)
		if n == "" {
			continue
		}
		if !o.table.Has(n) {
			log.Warn("category filter names an unknown category", "category", name)
		}
		filter[n] = true
	}
	return filter
}

func (o *Organizer) logOutcome(ctx context.Context, log *slog.Logger, outcome MoveOutcome, dryRun bool) {
	level := slog.LevelDebug
	if o.cfg.Settings.LogOperations {
		level = slog.LevelInfo
	}
	msg := "moved file"
	if dryRun {
		msg = "would move file"
	}
	log.Log(ctx, level, msg,
		"from", outcome.OriginalPath,
		"to", outcome.TargetPath,
		"category", outcome.Category)
}
