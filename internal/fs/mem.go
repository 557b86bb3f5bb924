package fs

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
)

// MemFileSystem is an in-memory filesystem for testing.
// Moves behave like real ones, without logging.
type MemFileSystem struct {
	afero.Fs
}

// Move renames src to dst unless dst exists.
func (m *MemFileSystem) Move(src, dst string) error {
	if err := ensureFree(m.Fs, dst); err != nil {
		return err
	}
	return m.Fs.Rename(src, dst)
}

// UniqueName returns the first free candidate for name in dir.
func (m *MemFileSystem) UniqueName(dir, name string) (string, error) {
	return uniqueName(m.Fs, dir, name)
}

// DryRun returns a simulated view over the in-memory tree.
func (m *MemFileSystem) DryRun() FileSystem {
	return NewDryRun(m.Fs)
}

// IsDryRun reports false.
func (m *MemFileSystem) IsDryRun() bool {
	return false
}

// MustMkdirAll creates a directory and panics on error. For use in tests.
func (m *MemFileSystem) MustMkdirAll(path string) {
	if err := m.Fs.MkdirAll(path, 0755); err != nil {
		panic(fmt.Sprintf("MustMkdirAll(%q): %v", path, err))
	}
}

// MustWriteFile writes content to path and panics on error. For use in tests.
func (m *MemFileSystem) MustWriteFile(path string, content string) {
	if err := afero.WriteFile(m.Fs, path, []byte(content), 0644); err != nil {
		panic(fmt.Sprintf("MustWriteFile(%q): %v", path, err))
	}
}

// MustChtimes sets the modification time of path and panics on error. For use in tests.
func (m *MemFileSystem) MustChtimes(path string, mtime time.Time) {
	if err := m.Fs.Chtimes(path, mtime, mtime); err != nil {
		panic(fmt.Sprintf("MustChtimes(%q): %v", path, err))
	}
}

// MustRemoveAll removes a path and panics on error. For use in tests.
func (m *MemFileSystem) MustRemoveAll(path string) {
	if err := m.Fs.RemoveAll(path); err != nil {
		panic(fmt.Sprintf("MustRemoveAll(%q): %v", path, err))
	}
}
