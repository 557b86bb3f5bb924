// Package daemon runs the long-lived watch mode: organize whenever downloads land.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/afero"

	"github.com/prettymuchbryce/tidydownloads/internal/config"
	"github.com/prettymuchbryce/tidydownloads/internal/fs"
	"github.com/prettymuchbryce/tidydownloads/internal/organizer"
	"github.com/prettymuchbryce/tidydownloads/internal/state"
	"github.com/prettymuchbryce/tidydownloads/internal/watcher"
)

// Controller manages the watcher lifecycle.
// All methods are called serially from Run, so no locking is needed.
type Controller struct {
	configPath string
	fs         afero.Fs
	cfg        *config.Config
	state      *state.State

	watcher            *watcher.Watcher
	stopWatcher        context.CancelFunc
	chanWatcherStopped chan struct{}
}

// NewController creates a new daemon controller.
// If st is provided, a summary of every run is persisted to it.
func NewController(configPath string, fs afero.Fs, cfg *config.Config, st *state.State) *Controller {
	return &Controller{
		configPath: configPath,
		fs:         fs,
		cfg:        cfg,
		state:      st,
	}
}

// StartWatcher creates and starts a watcher on the configured source directory.
func (c *Controller) StartWatcher() error {
	org := organizer.New(c.cfg, fs.NewReal())

	w, err := watcher.New(c.cfg.SourceDir, c.cfg.Watch.Debounce.Std(), organizeAction(org, c.state),
		watcher.WithRunOnStart(),
		watcher.WithSkip(skipFunc(org)),
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.watcher = w
	c.stopWatcher = cancel
	c.chanWatcherStopped = done

	go func() {
		defer close(done)
		if err := w.Run(ctx); err != nil {
			slog.Error("watcher error", "error", err)
		}
	}()

	return nil
}

// StopWatcher stops the current watcher and waits for it to finish.
func (c *Controller) StopWatcher() {
	if c.watcher == nil {
		return
	}

	c.stopWatcher()
	<-c.chanWatcherStopped

	c.watcher = nil
	c.stopWatcher = nil
	c.chanWatcherStopped = nil
}

// Running reports whether a watcher is active.
func (c *Controller) Running() bool {
	return c.watcher != nil
}

// organizeAction runs a real organize pass; settings.dry_run still forces a simulation.
func organizeAction(org *organizer.Organizer, st *state.State) watcher.Action {
	return func(ctx context.Context) error {
		start := time.Now()
		result, err := org.Organize(ctx, organizer.OrganizeOptions{})
		if err != nil {
			return err
		}
		if len(result.Moved) > 0 || len(result.Errors) > 0 {
			slog.Info("organized downloads",
				"moved", len(result.Moved),
				"errors", len(result.Errors),
				"dry_run", result.DryRun,
			)
		}

		if st != nil {
			run := state.RunState{
				LastRunAt:    start,
				LastDuration: time.Since(start),
				FilesMoved:   len(result.Moved),
				ErrorCount:   len(result.Errors),
				DryRun:       result.DryRun,
			}
			if err := st.UpdateRun(org.SourceDir(), run); err != nil {
				slog.Warn("failed to persist run stats", "dir", org.SourceDir(), "error", err)
			}
		}
		return nil
	}
}

// skipFunc drops events for the organized folder and for ignored names,
// such as partial downloads that are still being written.
func skipFunc(org *organizer.Organizer) func(path string) bool {
	organized := org.OrganizedRoot()
	return func(path string) bool {
		return path == organized || org.Ignored(filepath.Base(path))
	}
}

// Run loads config and watches the source directory until ctx is cancelled.
// On platforms with SIGHUP the config is reloaded when the signal arrives.
func Run(ctx context.Context, configPath string, fs afero.Fs, setupLogging func(string)) error {
	cfg, err := config.LoadWithFs(configPath, fs)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg.Logging.Level)
	slog.Info("loaded config", "path", configPath, "source", cfg.SourceDir, "debounce", cfg.Watch.Debounce.Std())

	// Load persistent state
	st, err := state.LoadFrom(state.PathFor(configPath))
	if err != nil {
		slog.Warn("failed to load state, starting fresh", "error", err)
		st, _ = state.LoadFrom("")
	}

	controller := NewController(configPath, fs, cfg, st)
	if err := controller.StartWatcher(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	reload := make(chan os.Signal, 1)
	if sigs := reloadSignals(); len(sigs) > 0 {
		signal.Notify(reload, sigs...)
		defer signal.Stop(reload)
	}

	// Notify systemd that we're ready (no-op on non-systemd systems)
	daemon.SdNotify(false, daemon.SdNotifyReady)
	slog.Info("daemon ready")

	for {
		select {
		case <-ctx.Done():
			// Notify systemd that we're stopping (no-op on non-systemd systems)
			daemon.SdNotify(false, daemon.SdNotifyStopping)
			controller.StopWatcher()
			return nil

		case <-reload:
			daemon.SdNotify(false, daemon.SdNotifyReloading)
			if err := controller.HandleReload(); err != nil {
				slog.Error("reload failed", "error", err)
			}
			daemon.SdNotify(false, daemon.SdNotifyReady)
		}
	}
}
