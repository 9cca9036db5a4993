// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_LoadFrom(t *testing.T) {
	home := t.TempDir()
	cfg, err := LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.MapframeDir != filepath.Join(home, ".mapframe") {
		t.Errorf("Unexpected MapframeDir %s", cfg.MapframeDir)
	}

	// Verify directories exist
	for _, dir := range []string{cfg.MapframeDir, cfg.LogDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			t.Errorf("%s should be created", dir)
		}
	}
}

func TestConfig_MissingSettingsUseDefaults(t *testing.T) {
	cfg, _ := LoadFrom(t.TempDir())

	s, err := cfg.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Viewport.Container != "map" {
		t.Errorf("Expected default container 'map', got '%s'", s.Viewport.Container)
	}
	if s.Fullscreen.Source != "" {
		t.Errorf("Expected empty source, got '%s'", s.Fullscreen.Source)
	}
	if s.Log.Level != "info" {
		t.Errorf("Expected level info, got '%s'", s.Log.Level)
	}
}

func TestConfig_ReadSettings(t *testing.T) {
	cfg, _ := LoadFrom(t.TempDir())
	data := "fullscreen:\n  source: \"#stage\"\nlog:\n  level: debug\n"
	if err := os.WriteFile(cfg.SettingsPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := cfg.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Fullscreen.Source != "#stage" {
		t.Errorf("Expected source '#stage', got '%s'", s.Fullscreen.Source)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Expected level debug, got '%s'", s.Log.Level)
	}
	if s.Viewport.Container != "map" {
		t.Errorf("Expected default container to survive partial file, got '%s'", s.Viewport.Container)
	}
}

func TestConfig_MalformedSettings(t *testing.T) {
	cfg, _ := LoadFrom(t.TempDir())
	os.WriteFile(cfg.SettingsPath, []byte("fullscreen: [unclosed"), 0644)

	s, err := cfg.LoadSettings()
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if s.Viewport.Container != "map" {
		t.Error("Defaults should be returned alongside the error")
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	cfg, _ := LoadFrom(t.TempDir())
	want := DefaultSettings()
	want.Fullscreen.Source = "body"

	if err := cfg.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := cfg.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
