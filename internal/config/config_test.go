package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridtype.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.Channel.Path)
	assert.Equal(t, 2*time.Second, cfg.Channel.StaleTimeout())
	assert.Equal(t, 300*time.Millisecond, cfg.Input.GracePeriod())
	assert.Equal(t, 400*time.Millisecond, cfg.Input.BackspaceDelay())
	assert.Equal(t, 60*time.Millisecond, cfg.Input.BackspaceInterval())
	assert.Equal(t, 60, cfg.Input.ShiftEngage)
	assert.Equal(t, 40, cfg.Input.ShiftRelease)
	assert.Equal(t, 256, cfg.Session.MaxLength)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[channel]
path = "/tmp/other.chan"

[input]
grace_period_ms = 150

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.chan", cfg.Channel.Path)
	assert.Equal(t, 150*time.Millisecond, cfg.Input.GracePeriod())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Untouched sections keep their defaults.
	assert.Equal(t, 256, cfg.Session.MaxLength)
	assert.Equal(t, 400, cfg.Input.BackspaceDelayMs)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedFails(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty channel path", "[channel]\npath = \"\"\n"},
		{"max length zero", "[session]\nmax_length = 0\n"},
		{"max length over limit", "[session]\nmax_length = 300\n"},
		{"release above engage", "[input]\nshift_release = 80\n"},
		{"zero screen", "[input]\nscreen_width = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
