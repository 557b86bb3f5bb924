package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

const maxAttachAttempts = 8

// fsnotifyWatcher is the interface for fsnotify operations, allowing mocking in tests.
type fsnotifyWatcher interface {
	Add(name string) error
	Remove(name string) error
}

// rootTracker keeps a watch on one directory. While the directory is missing it
// watches the closest existing ancestor and moves back down as the path is recreated.
type rootTracker struct {
	afs       afero.Fs
	fsWatcher fsnotifyWatcher
	target    string
	// watched is the path currently registered with fsnotify, or "" for none.
	watched string
	// skip reports paths under target whose events never trigger a run.
	skip func(path string) bool
}

func newRootTracker(afs afero.Fs, fsWatcher fsnotifyWatcher, target string) *rootTracker {
	return &rootTracker{
		afs:       afs,
		fsWatcher: fsWatcher,
		target:    filepath.Clean(target),
	}
}

// attached reports whether the target itself is being watched.
func (r *rootTracker) attached() bool {
	return r.watched == r.target
}

// attach watches the target, or its closest existing ancestor while the target is missing.
func (r *rootTracker) attach() error {
	for range maxAttachAttempts {
		path := r.closestExisting()
		if path == "" {
			return fmt.Errorf("no existing ancestor of %s", r.target)
		}
		if path == r.watched {
			return nil
		}

		r.detach()
		if err := r.fsWatcher.Add(path); err != nil {
			slog.Debug("failed to add watch, retrying", "path", path, "error", err)
			continue
		}
		r.watched = path
		if path == r.target {
			slog.Debug("watching directory", "path", path)
			return nil
		}
		slog.Info("directory missing, watching ancestor", "target", r.target, "ancestor", path)

		// The target may have been created between the stat and the watch.
		if r.closestExisting() == path {
			return nil
		}
	}
	return fmt.Errorf("could not watch %s after %d attempts", r.target, maxAttachAttempts)
}

func (r *rootTracker) detach() {
	if r.watched == "" {
		return
	}
	if err := r.fsWatcher.Remove(r.watched); err != nil {
		slog.Debug("failed to remove watch", "path", r.watched, "error", err)
	}
	r.watched = ""
}

// closestExisting returns the target or its nearest ancestor that is a directory.
func (r *rootTracker) closestExisting() string {
	p := r.target
	for {
		if info, err := r.afs.Stat(p); err == nil && info.IsDir() {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return ""
		}
		p = parent
	}
}

// process updates the watch for event and reports whether the target's contents changed.
// A target that reappears counts as a change.
func (r *rootTracker) process(event fsnotify.Event) bool {
	path := filepath.Clean(event.Name)
	before := r.attached()

	switch {
	case path == r.watched && event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// fsnotify has already dropped the watch.
		r.watched = ""
		if before {
			slog.Warn("watched directory removed", "path", path)
		}
		if err := r.attach(); err != nil {
			slog.Error("failed to re-attach watch", "target", r.target, "error", err)
		}
		return !before && r.attached()

	case before && filepath.Dir(path) == r.target:
		if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
			return false
		}
		return r.skip == nil || !r.skip(path)

	case !before && event.Op&fsnotify.Create != 0 && filepath.Dir(path) == r.watched && isAncestorOrSelf(path, r.target):
		if err := r.attach(); err != nil {
			slog.Error("failed to re-attach watch", "target", r.target, "error", err)
		}
		if r.attached() {
			slog.Info("watched directory recreated", "path", r.target)
			return true
		}
	}
	return false
}

func isAncestorOrSelf(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
