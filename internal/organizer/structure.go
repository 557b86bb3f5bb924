package organizer

import (
	"context"
	"path/filepath"

	"github.com/prettymuchbryce/tidydownloads/internal/pathutil"
)

// StructureResult lists the category folders ensured by CreateStructure.
type StructureResult struct {
	Root    string
	Folders []string
}

// CreateStructure creates <baseFolder>/<organized_dir>/<category> for every category.
// Existing folders are left as they are. An empty baseFolder means the source directory.
func (o *Organizer) CreateStructure(ctx context.Context, baseFolder string) (*StructureResult, error) {
	log := o.runLogger("structure")

	if baseFolder == "" {
		baseFolder = o.cfg.SourceDir
	}
	base, err := pathutil.Normalize(baseFolder)
	if err != nil {
		return nil, wrapErr(ErrInvalidPath, err)
	}

	release, err := o.acquire(ctx, base, log)
	if err != nil {
		return nil, err
	}
	defer release()

	root := filepath.Join(base, o.cfg.OrganizedDir)
	result := &StructureResult{Root: root}
	for _, name := range o.table.Names() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		dir := filepath.Join(root, name)
		if err := o.fs.MkdirAll(dir, 0o755); err != nil {
			log.Error("failed to create category folder", "path", dir, "error", err)
			return result, wrapErr(ErrIOFailure, err)
		}
		result.Folders = append(result.Folders, name)
	}

	log.Info("folder structure ready", "root", root, "folders", len(result.Folders))
	return result, nil
}
