package config

import (
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"mdsplit/internal/render"
)

// Validate checks enum fields, the release delay and file patterns.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, oneOf(render.ThemeDark, render.ThemeLight)),
		criterio.Run("view", c.View, oneOf(ViewSplit, ViewEditor, ViewPreview)),
		criterio.Run("min_column", c.MinColumn, positive),
		criterio.Run("scroll_sync.release_delay", c.ScrollSync.ReleaseDelay, shortDelay),
		criterio.Run("files.name_prefix", c.Files.NamePrefix, notEmpty),
		c.validatePatterns(),
	)
}

func (c *Config) validatePatterns() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Files.Accept {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("files.accept[%d]", i), fmt.Errorf("invalid pattern %q", pattern))
		}
	}
	return errs.ToError()
}

func oneOf(allowed ...string) func(string) error {
	return func(v string) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("must be one of %v, got %q", allowed, v)
	}
}

func positive(v int) error {
	if v < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

// shortDelay bounds the release delay; anything near a second makes scrolling
// the target pane feel frozen.
func shortDelay(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	if d > time.Second {
		return fmt.Errorf("must not exceed 1s, got %s", d)
	}
	return nil
}

func notEmpty(v string) error {
	if v == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}
