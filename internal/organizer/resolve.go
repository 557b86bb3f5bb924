package organizer

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
)

// ResolveTarget returns the directory a file belongs in:
// baseDir/<organized_dir>/<category>[/<date bucket>].
// The date bucket reflects the current time, not the file's modification time.
// It does not touch the filesystem.
func (o *Organizer) ResolveTarget(filePath, baseDir string) (string, error) {
	return o.resolveAt(filePath, baseDir, o.now())
}

func (o *Organizer) resolveAt(filePath, baseDir string, now time.Time) (string, error) {
	if filePath == "" || baseDir == "" {
		return "", wrapf(ErrInvalidPath, "empty path")
	}
	if strings.ContainsRune(filePath, 0) || strings.ContainsRune(baseDir, 0) {
		return "", wrapf(ErrInvalidPath, "path contains NUL byte")
	}

	name := filepath.Base(filePath)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", wrapf(ErrInvalidPath, "%q does not name a file", filePath)
	}

	dir := filepath.Join(baseDir, o.cfg.OrganizedDir, o.table.ClassifyName(name))
	if o.cfg.Settings.CreateDateSubfolders {
		dir = filepath.Join(dir, o.dateBucket(now))
	}
	return dir, nil
}

// dateBucket renders the configured strftime layout.
func (o *Organizer) dateBucket(now time.Time) string {
	return timefmt.Format(now, o.cfg.DateFormat)
}
