// Package config loads and validates the editor configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"mdsplit/internal/document"
	"mdsplit/internal/render"
	"mdsplit/internal/scrollsync"
)

// Layout names accepted by the view option.
const (
	ViewSplit   = "split"
	ViewEditor  = "editor"
	ViewPreview = "preview"
)

// Config is the on-disk editor configuration.
type Config struct {
	Theme      string           `yaml:"theme"`
	View       string           `yaml:"view"`
	Wrap       bool             `yaml:"wrap"`
	SyncScroll bool             `yaml:"sync_scroll"`
	MinColumn  int              `yaml:"min_column"`
	ScrollSync ScrollSyncConfig `yaml:"scroll_sync"`
	Files      FilesConfig      `yaml:"files"`
	Preview    PreviewConfig    `yaml:"preview"`
	Server     ServerConfig     `yaml:"server"`
}

// ScrollSyncConfig tunes the scroll synchronizer.
type ScrollSyncConfig struct {
	// ReleaseDelay is how long mirrored scroll events are ignored after a pass.
	ReleaseDelay time.Duration `yaml:"release_delay"`
}

// FilesConfig controls which files open and where saves go.
type FilesConfig struct {
	Accept     []string `yaml:"accept"`
	SaveDir    string   `yaml:"save_dir"`
	NamePrefix string   `yaml:"name_prefix"`
}

// PreviewConfig controls HTML rendering.
type PreviewConfig struct {
	CodeTheme string `yaml:"code_theme"` // chroma style name
}

// ServerConfig controls the browser preview server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:      render.ThemeDark,
		View:       ViewSplit,
		Wrap:       true,
		SyncScroll: true,
		MinColumn:  30,
		ScrollSync: ScrollSyncConfig{ReleaseDelay: scrollsync.DefaultReleaseDelay},
		Files: FilesConfig{
			Accept:     append([]string(nil), document.DefaultAccept...),
			SaveDir:    ".",
			NamePrefix: "markdown",
		},
		Preview: PreviewConfig{CodeTheme: render.DefaultCodeTheme},
		Server:  ServerConfig{Addr: "127.0.0.1:0"},
	}
}

// Load reads configuration from path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills zero values left by a partial file.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.View == "" {
		c.View = defaults.View
	}
	if c.MinColumn == 0 {
		c.MinColumn = defaults.MinColumn
	}
	if c.ScrollSync.ReleaseDelay == 0 {
		c.ScrollSync.ReleaseDelay = defaults.ScrollSync.ReleaseDelay
	}
	if len(c.Files.Accept) == 0 {
		c.Files.Accept = defaults.Files.Accept
	}
	if c.Files.SaveDir == "" {
		c.Files.SaveDir = defaults.Files.SaveDir
	}
	if c.Files.NamePrefix == "" {
		c.Files.NamePrefix = defaults.Files.NamePrefix
	}
	if c.Preview.CodeTheme == "" {
		c.Preview.CodeTheme = defaults.Preview.CodeTheme
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
}

// Clone returns a deep copy.
func Clone(c *Config) *Config {
	out := *c
	out.Files.Accept = append([]string(nil), c.Files.Accept...)
	return &out
}

// Save writes c as YAML, creating the parent directory.
func Save(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPath returns <user config dir>/mdsplit/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "mdsplit.yaml"
	}
	return filepath.Join(dir, "mdsplit", "config.yaml")
}
