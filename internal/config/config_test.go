package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
  "base_url": "http://localhost:5173",
  "production_url": "https://app.understandly.com",
  "window": {
    "title": "Understandly Lockdown",
    "fullscreen": true,
    "always_on_top": true,
    "skip_taskbar": true
  },
  "debug_settings": {
    "enable_emergency_exit": false
  }
}`

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5173", cfg.BaseURL)
	assert.Equal(t, "https://app.understandly.com", cfg.ProductionURL)
	assert.Equal(t, "Understandly Lockdown", cfg.Window.Title)
	assert.True(t, cfg.Window.Fullscreen)
	assert.True(t, cfg.Window.AlwaysOnTop)
	assert.True(t, cfg.Window.SkipTaskbar)
	assert.False(t, cfg.Debug.EnableEmergencyExit)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"base_url": `},
		{"empty document", `{}`},
		{"missing base_url", `{"production_url": "https://x", "window": {"title": "t"}}`},
		{"missing production_url", `{"base_url": "http://x", "window": {"title": "t"}}`},
		{"missing window title", `{"base_url": "http://x", "production_url": "https://x", "window": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockdown.config.json")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Understandly Lockdown", cfg.Window.Title)
}

func TestEffectiveBaseURL(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, cfg.BaseURL, cfg.EffectiveBaseURL(ProfileDev))
	assert.Equal(t, cfg.ProductionURL, cfg.EffectiveBaseURL(ProfileProduction))
}

func TestEscapeValveEnabled(t *testing.T) {
	tests := []struct {
		name    string
		flag    bool
		profile Profile
		want    bool
	}{
		{"dev build, flag off", false, ProfileDev, true},
		{"dev build, flag on", true, ProfileDev, true},
		{"production build, flag off", false, ProfileProduction, false},
		{"production build, flag on", true, ProfileProduction, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Debug: DebugConfig{EnableEmergencyExit: tt.flag}}
			assert.Equal(t, tt.want, cfg.EscapeValveEnabled(tt.profile))
		})
	}
}
