// Package organizer sorts the files of a downloads folder into category folders.
package organizer

import (
	"context"
	"errors"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/prettymuchbryce/tidydownloads/internal/category"
	"github.com/prettymuchbryce/tidydownloads/internal/config"
	"github.com/prettymuchbryce/tidydownloads/internal/fs"
	"github.com/prettymuchbryce/tidydownloads/internal/lock"
)

// FileRecord describes one file found directly inside the source directory.
type FileRecord struct {
	Name     string
	Path     string
	Size     int64
	ModTime  time.Time
	Category string
}

// Organizer runs the scan, organize, prune, structure and file-info operations
// against one configured source directory.
type Organizer struct {
	cfg    *config.Config
	table  *category.Table
	fs     fs.FileSystem
	locker *lock.Locker
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Organizer.
type Option func(*Organizer)

// WithClock overrides the time source used for date folders.
func WithClock(now func() time.Time) Option {
	return func(o *Organizer) {
		o.now = now
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Organizer) {
		o.logger = logger
	}
}

// WithLocker overrides the directory locker. A nil locker disables locking.
func WithLocker(locker *lock.Locker) Option {
	return func(o *Organizer) {
		o.locker = locker
	}
}

// New creates an Organizer. cfg must not be modified afterwards.
func New(cfg *config.Config, filesystem fs.FileSystem, opts ...Option) *Organizer {
	o := &Organizer{
		cfg:    cfg,
		table:  cfg.Table(),
		fs:     filesystem,
		locker: lock.New(cfg.LockDir),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SourceDir returns the directory being organized.
func (o *Organizer) SourceDir() string {
	return o.cfg.SourceDir
}

// OrganizedRoot returns the folder that receives organized files.
func (o *Organizer) OrganizedRoot() string {
	return o.cfg.OrganizedRoot()
}

// Table returns the category table in use.
func (o *Organizer) Table() *category.Table {
	return o.table
}

// runLogger returns a logger tagged with the operation and a fresh run id.
func (o *Organizer) runLogger(op string) *slog.Logger {
	return o.logger.With("op", op, "run", uuid.NewString())
}

// acquire takes the exclusive lock for dir. The returned func releases it.
func (o *Organizer) acquire(ctx context.Context, dir string, log *slog.Logger) (func(), error) {
	if o.locker == nil {
		return func() {}, nil
	}
	l, err := o.locker.Acquire(ctx, dir)
	if err != nil {
		return nil, err
	}
	log.Debug("lock acquired", "dir", l.Target())
	return func() {
		if err := l.Release(); err != nil {
			log.Warn("failed to release lock", "dir", l.Target(), "error", err)
		}
	}, nil
}

// listFiles returns the regular files directly inside dir, sorted by name,
// skipping names that match an ignore pattern. Symlinks are followed.
func (o *Organizer) listFiles(afs afero.Fs, dir string, log *slog.Logger) ([]FileRecord, error) {
	info, err := afs.Stat(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, wrapf(ErrNotFound, "source directory %s", dir)
		}
		return nil, wrapErr(ErrIOFailure, err)
	}
	if !info.IsDir() {
		return nil, wrapf(ErrInvalidPath, "%s is not a directory", dir)
	}

	// afero.ReadDir sorts entries by name.
	entries, err := afero.ReadDir(afs, dir)
	if err != nil {
		return nil, wrapErr(ErrIOFailure, err)
	}

	var files []FileRecord
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := afs.Stat(path)
			if err != nil {
				log.Debug("skipping dangling symlink", "path", path, "error", err)
				continue
			}
			entry = target
		}
		if !entry.Mode().IsRegular() {
			continue
		}
		if o.Ignored(entry.Name()) {
			log.Debug("ignoring file", "path", path)
			continue
		}
		files = append(files, FileRecord{
			Name:     entry.Name(),
			Path:     path,
			Size:     entry.Size(),
			ModTime:  entry.ModTime(),
			Category: o.table.ClassifyName(entry.Name()),
		})
	}
	return files, nil
}

// Ignored reports whether name matches one of the configured ignore globs.
func (o *Organizer) Ignored(name string) bool {
	for _, pattern := range o.cfg.Ignore {
		// Patterns are validated when the config is loaded.
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
