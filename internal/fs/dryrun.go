package fs

import (
	"os"

	"github.com/spf13/afero"
)

// DryRunFileSystem simulates operations without modifying the real filesystem.
// Uses CopyOnWriteFs so operations work correctly in memory.
type DryRunFileSystem struct {
	afero.Fs
}

// Remove is a no-op in dry-run mode.
// CoW doesn't support removing files that only exist in the base layer.
func (d *DryRunFileSystem) Remove(name string) error {
	return nil
}

// RemoveAll is a no-op in dry-run mode.
// CoW doesn't support removing files that only exist in the base layer.
func (d *DryRunFileSystem) RemoveAll(path string) error {
	return nil
}

// Rename leaves an empty placeholder at the new location.
// CoW can't rename base-layer files, and copying contents is unnecessary:
// later operations only need to see that the name is taken.
func (d *DryRunFileSystem) Rename(oldname, newname string) error {
	srcInfo, err := d.Fs.Stat(oldname)
	if err != nil {
		return err
	}

	if srcInfo.IsDir() {
		return d.Fs.MkdirAll(newname, srcInfo.Mode().Perm())
	}

	f, err := d.Fs.OpenFile(newname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	return f.Close()
}

// Move records the move in memory after the same checks a real move makes.
func (d *DryRunFileSystem) Move(src, dst string) error {
	if err := ensureFree(d.Fs, dst); err != nil {
		return err
	}
	return d.Rename(src, dst)
}

// UniqueName returns the first candidate that is free in both layers.
func (d *DryRunFileSystem) UniqueName(dir, name string) (string, error) {
	return uniqueName(d.Fs, dir, name)
}

// DryRun returns the receiver.
func (d *DryRunFileSystem) DryRun() FileSystem {
	return d
}

// IsDryRun reports true.
func (d *DryRunFileSystem) IsDryRun() bool {
	return true
}
