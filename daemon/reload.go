package daemon

import (
	"fmt"
	"log/slog"

	"github.com/prettymuchbryce/tidydownloads/internal/config"
)

// HandleReload reloads the configuration file and restarts the watcher.
// If the new config is invalid the running watcher is left untouched.
func (c *Controller) HandleReload() error {
	cfg, err := config.LoadWithFs(c.configPath, c.fs)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	previous := c.cfg
	wasRunning := c.Running()
	c.StopWatcher()
	c.cfg = cfg

	if err := c.StartWatcher(); err != nil {
		slog.Warn("new config could not be watched, restoring previous", "error", err)
		c.cfg = previous
		if wasRunning {
			if restartErr := c.StartWatcher(); restartErr != nil {
				slog.Error("failed to restore watcher", "error", restartErr)
			}
		}
		return fmt.Errorf("failed to restart watcher: %w", err)
	}

	slog.Info("reloaded config", "path", c.configPath, "source", cfg.SourceDir)
	return nil
}
