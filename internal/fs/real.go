package fs

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/spf13/afero"
)

// RealFileSystem performs actual filesystem operations.
type RealFileSystem struct {
	afero.Fs
}

// Rename performs the rename operation.
func (r *RealFileSystem) Rename(oldname, newname string) error {
	slog.Debug("renaming", "from", oldname, "to", newname)
	return r.Fs.Rename(oldname, newname)
}

// Remove performs the remove operation.
func (r *RealFileSystem) Remove(name string) error {
	slog.Debug("removing", "path", name)
	return r.Fs.Remove(name)
}

// Move renames src to dst, falling back to copy and delete across devices.
func (r *RealFileSystem) Move(src, dst string) error {
	if err := ensureFree(r.Fs, dst); err != nil {
		return err
	}
	slog.Debug("moving", "from", src, "to", dst)
	err := r.Fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	slog.Debug("rename crossed devices, copying instead", "from", src, "to", dst)
	return copyAndRemove(r.Fs, src, dst)
}

// UniqueName returns the first free candidate for name in dir.
func (r *RealFileSystem) UniqueName(dir, name string) (string, error) {
	return uniqueName(r.Fs, dir, name)
}

// DryRun returns a simulated view of the real filesystem.
func (r *RealFileSystem) DryRun() FileSystem {
	return NewDryRun(r.Fs)
}

// IsDryRun reports false.
func (r *RealFileSystem) IsDryRun() bool {
	return false
}

// copyAndRemove copies src to dst, keeps its mode and times, then removes src.
// A partial copy is removed if anything fails before src is deleted.
func copyAndRemove(afs afero.Fs, src, dst string) error {
	info, err := afs.Stat(src)
	if err != nil {
		return err
	}

	if err := copyFile(afs, src, dst, info.Mode()); err != nil {
		afs.Remove(dst)
		return err
	}
	if err := afs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		slog.Debug("failed to preserve modification time", "path", dst, "error", err)
	}
	if err := afs.Remove(src); err != nil {
		afs.Remove(dst)
		return err
	}
	return nil
}

// copyFile copies a single file.
func copyFile(afs afero.Fs, src, dst string, mode os.FileMode) error {
	srcFile, err := afs.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := afs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}

	return dstFile.Close()
}
