package model

import (
	"time"

	kanerr "github.com/amterp/swatch/internal/errors"
)

// Config represents the user's swatch configuration.
// Stored at ~/.config/swatch/config.toml
// Schema changes require a version bump; see internal/version/version.go.
type Config struct {
	SwatchSchema   string `toml:"swatch_schema" json:"-"`
	DataDir        string `toml:"data_dir,omitempty" json:"data_dir"`
	CopyFeedbackMs int    `toml:"copy_feedback_ms,omitempty" json:"copy_feedback_ms"`
	ServePort      int    `toml:"serve_port,omitempty" json:"serve_port"`
	OpenBrowser    *bool  `toml:"open_browser" json:"open_browser"`
	Editor         string `toml:"editor,omitempty" json:"editor,omitempty"`
}

const (
	DefaultCopyFeedbackMs = 1000
	DefaultServePort      = 3000
)

// DefaultConfig returns a config with every field at its default.
// DataDir is left empty; config.Paths resolves it.
func DefaultConfig() *Config {
	open := true
	return &Config{
		CopyFeedbackMs: DefaultCopyFeedbackMs,
		ServePort:      DefaultServePort,
		OpenBrowser:    &open,
	}
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.CopyFeedbackMs == 0 {
		c.CopyFeedbackMs = DefaultCopyFeedbackMs
	}
	if c.ServePort == 0 {
		c.ServePort = DefaultServePort
	}
	if c.OpenBrowser == nil {
		open := true
		c.OpenBrowser = &open
	}
}

// CopyFeedback is how long the copied indicator stays on.
func (c *Config) CopyFeedback() time.Duration {
	return time.Duration(c.CopyFeedbackMs) * time.Millisecond
}

// ShouldOpenBrowser reports whether serve opens a browser by default.
func (c *Config) ShouldOpenBrowser() bool {
	return c.OpenBrowser == nil || *c.OpenBrowser
}

// Validate rejects values no surface can use.
func (c *Config) Validate() error {
	if c.CopyFeedbackMs < 0 {
		return kanerr.InvalidField("copy_feedback_ms", "must be positive")
	}
	if c.ServePort < 0 || c.ServePort > 65535 {
		return kanerr.InvalidField("serve_port", "must be between 1 and 65535")
	}
	return nil
}
