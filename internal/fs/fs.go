package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/prettymuchbryce/tidydownloads/internal/pathutil"
)

// ErrDestinationExists is returned by Move when the destination is already taken.
var ErrDestinationExists = errors.New("destination already exists")

// FileSystem extends afero.Fs with the operations the organizer needs.
type FileSystem interface {
	afero.Fs

	// Move relocates a regular file. It never overwrites an existing destination.
	Move(src, dst string) error

	// UniqueName returns a path inside dir for name that does not exist yet.
	// If name is taken, "stem_N.ext" is tried for N = 1, 2, ...
	UniqueName(dir, name string) (string, error)

	// DryRun returns a view of the same tree in which writes land in memory.
	DryRun() FileSystem

	// IsDryRun reports whether writes reach the underlying filesystem.
	IsDryRun() bool
}

// NewReal creates a FileSystem that performs actual filesystem operations.
func NewReal() FileSystem {
	return &RealFileSystem{
		Fs: afero.NewOsFs(),
	}
}

// NewDryRun creates a FileSystem that simulates writes on top of base.
// Uses CopyOnWriteFs so subsequent operations see earlier ones (e.g., two moves to the same name).
func NewDryRun(base afero.Fs) FileSystem {
	ro := afero.NewReadOnlyFs(base)
	layer := afero.NewMemMapFs()
	cow := afero.NewCopyOnWriteFs(ro, layer)
	return &DryRunFileSystem{Fs: cow}
}

// NewMem creates an in-memory FileSystem for testing.
func NewMem() FileSystem {
	return &MemFileSystem{Fs: afero.NewMemMapFs()}
}

// NewMemTest returns a MemFileSystem for testing with access to Must* helpers.
func NewMemTest() *MemFileSystem {
	return &MemFileSystem{Fs: afero.NewMemMapFs()}
}

// GenerateSuffixedPath generates a path with a numeric suffix before the final extension.
// For example: file.txt with suffix 2 becomes file_2.txt,
// and archive.tar.gz becomes archive.tar_2.gz.
func GenerateSuffixedPath(path string, suffix int) string {
	dir := filepath.Dir(path)
	stem, ext := pathutil.SplitName(filepath.Base(path))
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, suffix, ext))
}

// uniqueName probes afs for the first free candidate.
func uniqueName(afs afero.Fs, dir, name string) (string, error) {
	candidate := filepath.Join(dir, name)
	for i := 1; ; i++ {
		exists, err := pathExists(afs, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = GenerateSuffixedPath(filepath.Join(dir, name), i)
	}
}

func pathExists(afs afero.Fs, path string) (bool, error) {
	_, err := afs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ensureFree fails if dst already exists, so a move never clobbers a file.
func ensureFree(afs afero.Fs, dst string) error {
	exists, err := pathExists(afs, dst)
	if err != nil {
		return err
	}
	if exists {
		return &fs.PathError{Op: "move", Path: dst, Err: ErrDestinationExists}
	}
	return nil
}
