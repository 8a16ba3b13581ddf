package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	assert.Equal(t, "q", defaults.Quit)
	assert.Equal(t, "space", defaults.PickUpTask)
	assert.Equal(t, "esc", defaults.CancelDrag)
	assert.Equal(t, "enter", defaults.Acknowledge)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("AGENCY_API_URL", "")
	t.Setenv("AGENCY_THEME_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Polling.Tasks)
	assert.Equal(t, 5*time.Second, cfg.Polling.Announcements)
	assert.Equal(t, 30*time.Second, cfg.Polling.Dashboard)
	assert.Zero(t, cfg.Polling.Users)
	assert.Zero(t, cfg.Polling.Ventures)
	assert.Equal(t, "q", cfg.KeyMappings.Quit)
	assert.Equal(t, "default", cfg.ColorScheme.Preset)
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "agency")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))
}

func TestLoadConfigWithFile(t *testing.T) {
	t.Setenv("AGENCY_API_URL", "")
	t.Setenv("AGENCY_THEME_FILE", "")
	writeConfig(t, `api:
  base_url: "https://cms.example.com/api/v1"
polling:
  tasks: 10s
key_mappings:
  quit: "x"
  pick_up_task: "p"
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://cms.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Polling.Tasks)
	// Keys absent from the file keep their defaults
	assert.Equal(t, 5*time.Second, cfg.Polling.Announcements)
	assert.Equal(t, 30*time.Second, cfg.Polling.Dashboard)
	assert.Equal(t, "x", cfg.KeyMappings.Quit)
	assert.Equal(t, "p", cfg.KeyMappings.PickUpTask)
	assert.Equal(t, "esc", cfg.KeyMappings.CancelDrag)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
}

func TestLoadConfigZeroDisablesPolling(t *testing.T) {
	t.Setenv("AGENCY_API_URL", "")
	writeConfig(t, "polling:\n  tasks: 0s\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Polling.Tasks)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	writeConfig(t, "api: [unterminated\n")

	_, err := Load()
	assert.Error(t, err)
}

func TestEnvOverridesAPIURL(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("AGENCY_API_URL", "http://10.0.0.5:8000/api/v1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000/api/v1", cfg.API.BaseURL)
}

func TestThemeFileLoading(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	themePath := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte(`theme:
  accent: "#FF0000"
  drag_border: "#00FF00"
`), 0o644))
	t.Setenv("AGENCY_THEME_FILE", themePath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	assert.Equal(t, "#00FF00", cfg.ColorScheme.DragBorder)
	assert.Equal(t, DefaultColorScheme().Subtle, cfg.ColorScheme.Subtle)
}

func TestMonochromePreset(t *testing.T) {
	scheme := ColorScheme{Preset: "monochrome"}
	scheme.ApplyDefaults()
	assert.Equal(t, MonochromeColorScheme().Accent, scheme.Accent)

	custom := ColorScheme{Preset: "monochrome", Accent: "#123456"}
	custom.ApplyDefaults()
	assert.Equal(t, "#123456", custom.Accent)
	assert.Equal(t, MonochromeColorScheme().ErrorBg, custom.ErrorBg)
}
