package organizer

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

// node is a file or directory in a snapshot of the organized tree.
type node struct {
	name     string
	children []*node
	isDir    bool
	// unreadable is set when the directory could not be listed.
	unreadable bool
}

// buildSnapshot captures the tree under root. Symlinks are recorded as
// non-directories and never followed.
func buildSnapshot(afs afero.Fs, root string, log *slog.Logger) *node {
	info, err := afs.Stat(root)
	if err != nil {
		log.Warn("failed to stat path", "path", root, "error", err)
		return nil
	}
	return snapshotDir(afs, root, info.IsDir(), log)
}

func snapshotDir(afs afero.Fs, path string, isDir bool, log *slog.Logger) *node {
	n := &node{name: filepath.Base(path), isDir: isDir}
	if !isDir {
		return n
	}

	// afero.ReadDir sorts entries by name.
	entries, err := afero.ReadDir(afs, path)
	if err != nil {
		log.Warn("failed to read directory", "path", path, "error", err)
		n.unreadable = true
		return n
	}

	for _, entry := range entries {
		childPath := filepath.Join(path, entry.Name())
		n.children = append(n.children, snapshotDir(afs, childPath, entry.IsDir(), log))
	}
	return n
}

// collectEmpty walks the children of root depth-first, children before parent,
// and returns the directories that contain nothing but other such directories.
// root itself is never included.
func collectEmpty(root *node, rootPath string) []string {
	var out []string
	for _, child := range root.children {
		collectEmptyDFS(child, rootPath, &out)
	}
	return out
}

func collectEmptyDFS(n *node, parentPath string, out *[]string) bool {
	if !n.isDir {
		return false
	}
	path := filepath.Join(parentPath, n.name)

	eligible := !n.unreadable
	for _, child := range n.children {
		if !collectEmptyDFS(child, path, out) {
			eligible = false
		}
	}
	if eligible {
		*out = append(*out, path)
	}
	return eligible
}
