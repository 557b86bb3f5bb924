package organizer

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"
)

// PruneResult lists the empty directories found under the organized root.
type PruneResult struct {
	Root   string
	DryRun bool
	// Removed holds the directories removed (or that would be, in a dry run),
	// deepest first.
	Removed []string
	// Failed holds directories that were eligible but could not be removed.
	Failed []PruneFailure
}

// PruneFailure is a directory that could not be removed.
type PruneFailure struct {
	Path string
	Err  error
}

// RelativeRemoved returns Removed relative to Root.
func (r *PruneResult) RelativeRemoved() []string {
	out := make([]string, 0, len(r.Removed))
	for _, p := range r.Removed {
		rel, err := filepath.Rel(r.Root, p)
		if err != nil {
			rel = p
		}
		out = append(out, rel)
	}
	return out
}

// PruneEmpty removes directories under the organized root that hold no files,
// directly or in any subdirectory. The root itself is kept.
// Eligibility is decided on a snapshot, so a dry run reports the same cascade a real run removes.
func (o *Organizer) PruneEmpty(ctx context.Context, dryRun bool) (*PruneResult, error) {
	log := o.runLogger("prune")
	dryRun = dryRun || o.cfg.Settings.DryRun
	root := o.cfg.OrganizedRoot()

	// Organize and prune share the source directory lock so pruning never
	// races with a move into a directory it judged empty.
	release, err := o.acquire(ctx, o.cfg.SourceDir, log)
	if err != nil {
		return nil, err
	}
	defer release()

	info, err := o.fs.Stat(root)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, wrapf(ErrNotFound, "organized directory %s", root)
		}
		return nil, wrapErr(ErrIOFailure, err)
	}
	if !info.IsDir() {
		return nil, wrapf(ErrInvalidPath, "%s is not a directory", root)
	}

	result := &PruneResult{Root: root, DryRun: dryRun}
	tree := buildSnapshot(o.fs, root, log)
	if tree == nil {
		return nil, wrapf(ErrIOFailure, "could not read %s", root)
	}

	for _, dir := range collectEmpty(tree, root) {
		if err := ctx.Err(); err != nil {
			log.Warn("prune cancelled", "removed", len(result.Removed))
			return result, err
		}

		if !dryRun {
			if err := o.fs.Remove(dir); err != nil {
				log.Warn("failed to remove empty directory", "path", dir, "error", err)
				result.Failed = append(result.Failed, PruneFailure{Path: dir, Err: wrapErr(ErrIOFailure, err)})
				continue
			}
		}
		log.Debug("empty directory", "path", dir, "dry_run", dryRun)
		result.Removed = append(result.Removed, dir)
	}

	log.Info("prune complete", "root", root, "dry_run", dryRun, "removed", len(result.Removed), "failed", len(result.Failed))
	return result, nil
}
