// Package config loads the lockdown policy resource.
// The policy is parsed once at startup and is immutable afterwards;
// guards only ever read it.
package config

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Profile identifies the build flavor. Release binaries set the production
// profile via ldflags; everything else runs as dev.
type Profile string

const (
	ProfileDev        Profile = "dev"
	ProfileProduction Profile = "production"
)

// WindowConfig holds the window chrome flags applied to the host window.
type WindowConfig struct {
	Title       string `json:"title"`
	Fullscreen  bool   `json:"fullscreen"`
	AlwaysOnTop bool   `json:"always_on_top"`
	SkipTaskbar bool   `json:"skip_taskbar"`
}

// DebugConfig holds operator-controlled escape hatches.
type DebugConfig struct {
	EnableEmergencyExit bool `json:"enable_emergency_exit"`
}

// Config is the static lockdown policy. A process that cannot load a valid
// policy must not open a window at all.
type Config struct {
	BaseURL       string       `json:"base_url"`
	ProductionURL string       `json:"production_url"`
	Window        WindowConfig `json:"window"`
	Debug         DebugConfig  `json:"debug_settings"`
}

// Load reads and validates the policy file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lockdown config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a raw policy document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse lockdown config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("lockdown config: base_url is required")
	}
	if c.ProductionURL == "" {
		return fmt.Errorf("lockdown config: production_url is required")
	}
	if c.Window.Title == "" {
		return fmt.Errorf("lockdown config: window.title is required")
	}
	return nil
}

// EffectiveBaseURL returns the origin the window serves for the given
// build profile.
func (c *Config) EffectiveBaseURL(p Profile) string {
	if p == ProfileProduction {
		return c.ProductionURL
	}
	return c.BaseURL
}

// EscapeValveEnabled merges the explicit config flag with the build profile.
// Non-production builds always keep the valve so a tester is never locked
// inside the window.
func (c *Config) EscapeValveEnabled(p Profile) bool {
	return c.Debug.EnableEmergencyExit || p != ProfileProduction
}
