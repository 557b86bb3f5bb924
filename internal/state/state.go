// Package state persists a summary of the last watch-mode run per source directory.
package state

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName is the state file kept next to the config file.
const FileName = "state.json"

// RunState summarizes the last organize pass over one source directory.
type RunState struct {
	LastRunAt    time.Time     `json:"last_run_at"`
	LastDuration time.Duration `json:"last_duration"`
	FilesMoved   int           `json:"files_moved"`
	ErrorCount   int           `json:"error_count"`
	DryRun       bool          `json:"dry_run"`
}

// State tracks watch-mode results that persist across restarts.
type State struct {
	mu   sync.RWMutex
	path string
	Dirs map[string]RunState `json:"dirs"`
}

// PathFor returns the state file that belongs to a config file.
// State is stored alongside config for simplicity.
func PathFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), FileName)
}

// LoadFrom loads state from the specified path.
// If the file doesn't exist, returns an empty state.
// An empty path gives an in-memory state that is never written.
func LoadFrom(path string) (*State, error) {
	s := &State{
		path: path,
		Dirs: make(map[string]RunState),
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		slog.Warn("failed to parse state file, starting fresh", "path", path, "error", err)
		s.Dirs = make(map[string]RunState)
		return s, nil
	}

	// JSON may have held null
	if s.Dirs == nil {
		s.Dirs = make(map[string]RunState)
	}

	return s, nil
}

// UpdateRun records the result of a run over dir and persists to disk.
func (s *State) UpdateRun(dir string, run RunState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Dirs[dir] = run
	return s.save()
}

// save persists the state to disk. Must be called with mu held.
func (s *State) save() error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// Readers only ever see a complete file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Run returns the last recorded run for dir, or nil if it has never run.
func (s *State) Run(dir string) *RunState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rs, ok := s.Dirs[dir]
	if !ok {
		return nil
	}
	return &rs
}
