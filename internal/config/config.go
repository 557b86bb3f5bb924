package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/prettymuchbryce/tidydownloads/internal/category"
	"github.com/prettymuchbryce/tidydownloads/internal/pathutil"
)

// Config represents the top-level configuration.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	SourceDir    string          `yaml:"source_dir" toml:"source_dir"`
	OrganizedDir string          `yaml:"organized_dir" toml:"organized_dir"`
	DateFormat   string          `yaml:"date_format" toml:"date_format"`
	LockDir      string          `yaml:"lock_dir" toml:"lock_dir"`
	Categories   []category.Rule `yaml:"categories" toml:"categories"`
	Ignore       []string        `yaml:"ignore" toml:"ignore"`
	Settings     Settings        `yaml:"settings" toml:"settings"`
	Watch        WatchConfig     `yaml:"watch" toml:"watch"`
	Logging      LoggingConfig   `yaml:"logging" toml:"logging"`

	table *category.Table
}

// Settings controls how files are organized.
type Settings struct {
	// CreateDateSubfolders adds a date bucket (processing time, not file mtime) under each category.
	CreateDateSubfolders bool `yaml:"create_date_subfolders" toml:"create_date_subfolders"`
	// DryRun forces every organize and cleanup call into simulation.
	DryRun bool `yaml:"dry_run" toml:"dry_run"`
	// LogOperations logs each move at info level instead of debug.
	LogOperations bool `yaml:"log_operations" toml:"log_operations"`
}

// WatchConfig represents watch-mode configuration.
type WatchConfig struct {
	Debounce Duration `yaml:"debounce" toml:"debounce"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Duration is a time.Duration that decodes from strings like "2s" in both YAML and TOML.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

const (
	DefaultSourceDir    = "~/Downloads"
	DefaultOrganizedDir = "organizados"
	DefaultDateFormat   = "%Y-%m"
)

// DefaultSettings returns the default organization settings.
func DefaultSettings() Settings {
	return Settings{
		CreateDateSubfolders: true,
		DryRun:               false,
		LogOperations:        true,
	}
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Debounce: Duration(2 * time.Second),
	}
}

// DefaultLoggingConfig returns the default logging configuration.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level: "warn",
	}
}

// Default returns a ready-to-use configuration with the built-in category table.
func Default() *Config {
	cfg := defaults()
	if err := cfg.finalize(); err != nil {
		// The built-in table is validated by tests; failing here is a programming error.
		panic(fmt.Sprintf("invalid built-in config: %v", err))
	}
	return cfg
}

func defaults() *Config {
	return &Config{
		SourceDir:    DefaultSourceDir,
		OrganizedDir: DefaultOrganizedDir,
		DateFormat:   DefaultDateFormat,
		LockDir:      pathutil.DefaultLockDir(),
		Categories:   category.DefaultRules(),
		Settings:     DefaultSettings(),
		Watch:        DefaultWatchConfig(),
		Logging:      DefaultLoggingConfig(),
	}
}

// Load reads and parses a configuration file using the real filesystem.
func Load(path string) (*Config, error) {
	return LoadWithFs(path, afero.NewOsFs())
}

// LoadWithFs reads and parses a configuration file using the provided filesystem.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func LoadWithFs(path string, afs afero.Fs) (*Config, error) {
	expanded := pathutil.ExpandTilde(path)

	data, err := afero.ReadFile(afs, expanded)
	if err != nil {
		return nil, err
	}

	// Start with defaults
	config := defaults()

	if strings.EqualFold(filepath.Ext(expanded), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data)).EnableUnmarshalerInterface()
		if err := dec.Decode(config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", expanded, err)
		}
	} else {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", expanded, err)
		}
	}

	if err := config.finalize(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", expanded, err)
	}

	return config, nil
}

// finalize fills blank values, expands paths, and validates the category table.
func (c *Config) finalize() error {
	if c.SourceDir == "" {
		c.SourceDir = DefaultSourceDir
	}
	c.SourceDir = filepath.Clean(pathutil.ExpandTilde(c.SourceDir))

	if c.LockDir == "" {
		c.LockDir = pathutil.DefaultLockDir()
	}
	c.LockDir = filepath.Clean(pathutil.ExpandTilde(c.LockDir))

	if c.OrganizedDir == "" {
		c.OrganizedDir = DefaultOrganizedDir
	}
	if c.OrganizedDir != filepath.Base(c.OrganizedDir) || c.OrganizedDir == "." || c.OrganizedDir == ".." {
		return fmt.Errorf("organized_dir must be a single folder name, got %q", c.OrganizedDir)
	}

	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	if strings.ContainsAny(c.DateFormat, `/\`) {
		return fmt.Errorf("date_format must not contain path separators: %q", c.DateFormat)
	}

	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}

	table := category.NewTable(c.Categories)
	if err := table.Validate(); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	c.table = table
	c.Categories = table.Rules()

	return nil
}

// Table returns the category table built from Categories.
func (c *Config) Table() *category.Table {
	if c.table == nil {
		c.table = category.NewTable(c.Categories)
	}
	return c.table
}

// OrganizedRoot returns the folder that receives organized files.
func (c *Config) OrganizedRoot() string {
	return filepath.Join(c.SourceDir, c.OrganizedDir)
}
