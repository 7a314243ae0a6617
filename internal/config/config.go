// Package config loads the runtime tunables for both the producer and
// the viewer from a TOML file, with complete defaults when no file is
// given.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all runtime tunables.
type Config struct {
	// Channel configures the shared-memory state channel.
	Channel ChannelConfig `toml:"channel"`

	// Input configures the router's gesture timings and thresholds.
	Input InputConfig `toml:"input"`

	// Session configures the edit session.
	Session SessionConfig `toml:"session"`

	// Logging configures both binaries' log output.
	Logging LoggingConfig `toml:"logging"`
}

// ChannelConfig locates the shared region and tunes the reader.
type ChannelConfig struct {
	// Path is the channel file both processes map.
	Path string `toml:"path"`

	// StaleTimeoutMs is how long the reader waits for the sequence
	// counter to advance before declaring the writer dead.
	StaleTimeoutMs int `toml:"stale_timeout_ms"`
}

// InputConfig tunes the router.
type InputConfig struct {
	GracePeriodMs       int `toml:"grace_period_ms"`
	BackspaceDelayMs    int `toml:"backspace_delay_ms"`
	BackspaceIntervalMs int `toml:"backspace_interval_ms"`
	ShiftEngage         int `toml:"shift_engage"`
	ShiftRelease        int `toml:"shift_release"`
	ScreenWidth         int `toml:"screen_width"`
	ScreenHeight        int `toml:"screen_height"`
}

// SessionConfig tunes the edit session.
type SessionConfig struct {
	// MaxLength caps the text buffer, up to 256.
	MaxLength int `toml:"max_length"`

	// Cycling repeat timings.
	CycleDelayMs     int `toml:"cycle_delay_ms"`
	CycleIntervalMs  int `toml:"cycle_interval_ms"`
	CycleAccelMs     int `toml:"cycle_accel_ms"`
	CycleAccelFastMs int `toml:"cycle_accel_fast_ms"`
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json
}

// Default returns the full default configuration.
func Default() *Config {
	return &Config{
		Channel: ChannelConfig{
			Path:           defaultChannelPath(),
			StaleTimeoutMs: 2000,
		},
		Input: InputConfig{
			GracePeriodMs:       300,
			BackspaceDelayMs:    400,
			BackspaceIntervalMs: 60,
			ShiftEngage:         60,
			ShiftRelease:        40,
			ScreenWidth:         1920,
			ScreenHeight:        1080,
		},
		Session: SessionConfig{
			MaxLength:        256,
			CycleDelayMs:     400,
			CycleIntervalMs:  150,
			CycleAccelMs:     1500,
			CycleAccelFastMs: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultChannelPath() string {
	return os.TempDir() + "/gridtype.chan"
}

// Load merges a TOML file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Channel.Path == "" {
		return fmt.Errorf("channel.path must not be empty")
	}
	if c.Session.MaxLength < 1 || c.Session.MaxLength > 256 {
		return fmt.Errorf("session.max_length must be in 1..256, got %d", c.Session.MaxLength)
	}
	if c.Input.ShiftRelease >= c.Input.ShiftEngage {
		return fmt.Errorf("input.shift_release (%d) must be below input.shift_engage (%d)",
			c.Input.ShiftRelease, c.Input.ShiftEngage)
	}
	if c.Input.ScreenWidth <= 0 || c.Input.ScreenHeight <= 0 {
		return fmt.Errorf("input screen size must be positive")
	}
	return nil
}

// GracePeriod returns the grace window as a duration.
func (c *InputConfig) GracePeriod() time.Duration {
	return time.Duration(c.GracePeriodMs) * time.Millisecond
}

// BackspaceDelay returns the repeat delay as a duration.
func (c *InputConfig) BackspaceDelay() time.Duration {
	return time.Duration(c.BackspaceDelayMs) * time.Millisecond
}

// BackspaceInterval returns the repeat interval as a duration.
func (c *InputConfig) BackspaceInterval() time.Duration {
	return time.Duration(c.BackspaceIntervalMs) * time.Millisecond
}

// StaleTimeout returns the reader's staleness timeout as a duration.
func (c *ChannelConfig) StaleTimeout() time.Duration {
	return time.Duration(c.StaleTimeoutMs) * time.Millisecond
}
