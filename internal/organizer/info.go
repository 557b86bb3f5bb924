package organizer

import (
	"context"
	"errors"
	iofs "io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/prettymuchbryce/tidydownloads/internal/fs"
)

// FileDetails describes a single file in the source directory.
type FileDetails struct {
	Name     string
	Dir      string
	Path     string
	Category string
	Size     int64
	ModTime  time.Time
	// SuggestedDir is where organize would put the file right now.
	SuggestedDir string
	// MIME is informational only; it never affects the category.
	MIME string
	// BirthTime is zero when the platform does not record it.
	BirthTime time.Time
}

// FileInfo reports metadata for filename, resolved inside the source directory.
func (o *Organizer) FileInfo(ctx context.Context, filename string) (*FileDetails, error) {
	log := o.runLogger("info")

	if err := validateFileName(filename); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(o.cfg.SourceDir, filename)
	info, err := o.fs.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, wrapf(ErrUnknownFile, "%s", filename)
		}
		return nil, wrapErr(ErrIOFailure, err)
	}
	if info.IsDir() {
		return nil, wrapf(ErrInvalidPath, "%s is a directory", filename)
	}

	suggested, err := o.ResolveTarget(path, o.cfg.SourceDir)
	if err != nil {
		return nil, err
	}

	details := &FileDetails{
		Name:         info.Name(),
		Dir:          filepath.Dir(path),
		Path:         path,
		Category:     o.table.ClassifyName(info.Name()),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		SuggestedDir: suggested,
		MIME:         o.detectMIME(path, log),
		BirthTime:    o.birthTime(path),
	}
	return details, nil
}

// validateFileName rejects names that would escape the source directory.
func validateFileName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return wrapf(ErrInvalidPath, "file name is empty")
	case name == "." || name == "..":
		return wrapf(ErrInvalidPath, "%q is not a file name", name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return wrapf(ErrInvalidPath, "%q must be a plain file name", name)
	case strings.ContainsRune(name, 0):
		return wrapf(ErrInvalidPath, "file name contains NUL byte")
	}
	return nil
}

func (o *Organizer) detectMIME(path string, log *slog.Logger) string {
	f, err := o.fs.Open(path)
	if err != nil {
		log.Debug("could not open file for MIME detection", "path", path, "error", err)
		return ""
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		log.Debug("MIME detection failed", "path", path, "error", err)
		return ""
	}
	return mt.String()
}

// birthTime is only available when the organizer runs on the OS filesystem.
func (o *Organizer) birthTime(path string) time.Time {
	rfs, ok := o.fs.(*fs.RealFileSystem)
	if !ok {
		return time.Time{}
	}
	if _, ok := rfs.Fs.(*afero.OsFs); !ok {
		return time.Time{}
	}
	t, err := times.Stat(path)
	if err != nil || !t.HasBirthTime() {
		return time.Time{}
	}
	return t.BirthTime()
}
