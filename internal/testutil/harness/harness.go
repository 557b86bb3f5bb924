//go:build integration

// Package harness runs data-driven watch-mode tests against a real temp directory.
// It lives apart from testutil so that packages below the daemon can keep importing testutil.
package harness

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"text/template"
	"time"

	"github.com/spf13/afero"

	"github.com/prettymuchbryce/tidydownloads/daemon"
)

// FileEntry describes a file or directory relative to the test's temp dir.
type FileEntry struct {
	Path    string // relative path using forward slashes (e.g., "Downloads/file.txt")
	IsDir   bool   // true for directories
	Content string // file content (mutually exclusive with Size)
	Size    int64  // create file with this many zero bytes
}

// TestCase is a complete data-driven watch-mode test.
type TestCase struct {
	Name    string        // test name (used for t.Run)
	Config  string        // YAML config with {{.TmpDir}} template variable
	Before  []FileEntry   // files/dirs to create BEFORE the watcher starts
	Trigger []FileEntry   // files to create AFTER the watcher starts
	Expect  []FileEntry   // files that SHOULD exist after processing
	Missing []string      // paths that should NOT exist after processing
	Settle  time.Duration // wait after startup before triggering (default: cooldown + margin)
	Timeout time.Duration // how long to wait for expected state (default: 3s)
}

// Harness manages the test environment.
type Harness struct {
	t      *testing.T
	tmpDir string
	fs     afero.Fs
	cancel context.CancelFunc
	errCh  chan error
}

// Run executes a single test case.
func Run(t *testing.T, tc TestCase) {
	t.Helper()

	h := &Harness{
		t:      t,
		tmpDir: t.TempDir(),
		fs:     afero.NewOsFs(),
		errCh:  make(chan error, 1),
	}

	h.createEntries(tc.Before)
	h.startDaemon(tc.Config)

	// Events inside the startup run's cooldown are ignored.
	settle := tc.Settle
	if settle == 0 {
		settle = 1200 * time.Millisecond
	}
	time.Sleep(settle)

	h.createEntries(tc.Trigger)
	h.waitAndVerify(tc)
	h.cleanup()
}

// RunTable executes multiple test cases as subtests.
func RunTable(t *testing.T, cases []TestCase) {
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			Run(t, tc)
		})
	}
}

func (h *Harness) path(rel string) string {
	return filepath.Join(h.tmpDir, filepath.FromSlash(rel))
}

// createEntries creates files and directories from FileEntry specs.
func (h *Harness) createEntries(entries []FileEntry) {
	h.t.Helper()

	for _, e := range entries {
		path := h.path(e.Path)

		if e.IsDir {
			if err := os.MkdirAll(path, 0755); err != nil {
				h.t.Fatalf("failed to create directory %s: %v", e.Path, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			h.t.Fatalf("failed to create parent directory for %s: %v", e.Path, err)
		}

		var content []byte
		if e.Content != "" {
			content = []byte(e.Content)
		} else if e.Size > 0 {
			content = make([]byte, e.Size)
		}
		if err := os.WriteFile(path, content, 0644); err != nil {
			h.t.Fatalf("failed to create file %s: %v", e.Path, err)
		}
	}
}

// startDaemon renders the config template and starts watch mode.
func (h *Harness) startDaemon(configTemplate string) {
	h.t.Helper()

	tmpl, err := template.New("config").Funcs(template.FuncMap{
		// join creates OS-native paths: {{join .TmpDir "Downloads"}}
		"join": filepath.Join,
	}).Parse(configTemplate)
	if err != nil {
		h.t.Fatalf("failed to parse config template: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{"TmpDir": h.tmpDir}); err != nil {
		h.t.Fatalf("failed to execute config template: %v", err)
	}

	configPath := h.path("config.yaml")
	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		h.t.Fatalf("failed to write config file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	go func() {
		h.errCh <- daemon.Run(ctx, configPath, h.fs, func(level string) {
			var logLevel slog.Level
			if err := logLevel.UnmarshalText([]byte(level)); err != nil {
				logLevel = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
		})
	}()

	time.Sleep(100 * time.Millisecond)

	select {
	case err := <-h.errCh:
		h.t.Fatalf("watch mode failed to start: %v", err)
	default:
	}
}

// waitAndVerify waits for the expected state and verifies it.
func (h *Harness) waitAndVerify(tc TestCase) {
	h.t.Helper()

	timeout := tc.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if len(h.stateErrors(tc.Expect, tc.Missing)) == 0 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}

	for _, msg := range h.stateErrors(tc.Expect, tc.Missing) {
		h.t.Error(msg)
	}
}

// stateErrors lists every way the tree differs from the expected state.
func (h *Harness) stateErrors(expect []FileEntry, missing []string) []string {
	var errs []string
	for _, e := range expect {
		info, err := os.Stat(h.path(e.Path))
		switch {
		case err != nil:
			errs = append(errs, "expected "+e.Path+" to exist, but it doesn't")
		case e.IsDir && !info.IsDir():
			errs = append(errs, "expected "+e.Path+" to be a directory, but it's a file")
		case !e.IsDir && info.IsDir():
			errs = append(errs, "expected "+e.Path+" to be a file, but it's a directory")
		}
	}
	for _, p := range missing {
		if _, err := os.Stat(h.path(p)); !os.IsNotExist(err) {
			errs = append(errs, "expected "+p+" to NOT exist, but it does")
		}
	}
	return errs
}

// cleanup stops watch mode gracefully.
func (h *Harness) cleanup() {
	h.t.Helper()

	if h.cancel != nil {
		h.cancel()
	}

	select {
	case err := <-h.errCh:
		if err != nil {
			h.t.Errorf("watch mode returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		h.t.Error("watch mode did not stop within timeout")
	}
}
