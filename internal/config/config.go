// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mapframe/internal/fullscreen"
)

// Config holds all application configuration paths
type Config struct {
	HomeDir      string
	MapframeDir  string
	LogDir       string
	SettingsPath string
}

// Load creates a Config instance with resolved paths
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(home)
}

// LoadFrom resolves paths under home instead of the user's home directory
func LoadFrom(home string) (*Config, error) {
	mapframeDir := filepath.Join(home, ".mapframe")
	logDir := filepath.Join(mapframeDir, "logs")

	// Ensure directories exist
	for _, dir := range []string{mapframeDir, logDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	return &Config{
		HomeDir:      home,
		MapframeDir:  mapframeDir,
		LogDir:       logDir,
		SettingsPath: filepath.Join(mapframeDir, "config.yaml"),
	}, nil
}

// Settings is the user-editable part of the configuration
type Settings struct {
	Fullscreen fullscreen.Options `yaml:"fullscreen"`
	Viewport   ViewportSettings   `yaml:"viewport"`
	Log        LogSettings        `yaml:"log"`
}

// ViewportSettings describes the map container
type ViewportSettings struct {
	// Container is the id of the map container element
	Container string `yaml:"container"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `yaml:"level"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	return Settings{
		Viewport: ViewportSettings{Container: "map"},
		Log:      LogSettings{Level: "info"},
	}
}

// LoadSettings reads the settings file. A missing file yields the defaults.
func (c *Config) LoadSettings() (Settings, error) {
	return ReadSettings(c.SettingsPath)
}

// ReadSettings reads settings from path, filling unset fields with defaults
func ReadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if s.Viewport.Container == "" {
		s.Viewport.Container = "map"
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	return s, nil
}

// SaveSettings writes s to the settings file
func (c *Config) SaveSettings(s Settings) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(c.SettingsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
