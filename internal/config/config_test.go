package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Server.BaseURL != defaultServerURL {
		t.Fatalf("expected default server URL, got %q", cfg.Server.BaseURL)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
	if cfg.Server.ResponseTimeout != 30*time.Second {
		t.Fatalf("expected 30s response timeout, got %s", cfg.Server.ResponseTimeout)
	}
	if !cfg.UI.Notifications || !cfg.UI.ShowActivity {
		t.Fatalf("expected notification defaults on, got %+v", cfg.UI)
	}
}

func TestLoadFromParsesYaml(t *testing.T) {
	dir := t.TempDir()
	configYAML := strings.TrimSpace(`
server:
  url: https://retro.example.com/api
  response_timeout: 5s
log:
  level: debug
ui:
  theme: light
  notifications: false
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Server.BaseURL != "https://retro.example.com/api" {
		t.Fatalf("unexpected server URL %q", cfg.Server.BaseURL)
	}
	if cfg.Server.ResponseTimeout != 5*time.Second {
		t.Fatalf("unexpected response timeout %s", cfg.Server.ResponseTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.UI.Theme != "light" || cfg.UI.Notifications {
		t.Fatalf("unexpected UI prefs %+v", cfg.UI)
	}
}

func TestSaveRoundTripsUIPreferences(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	cfg.UI.Theme = "light"
	cfg.UI.Notifications = false
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	if reloaded.UI.Theme != "light" {
		t.Fatalf("theme not persisted, got %q", reloaded.UI.Theme)
	}
	if reloaded.UI.Notifications {
		t.Fatal("notifications toggle not persisted")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RETROTERM_LOG_LEVEL", "warn")
	t.Setenv("RETROTERM_SERVER_URL", "https://env.example.com/api")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("env log level not applied, got %q", cfg.LogLevel)
	}
	if cfg.Server.BaseURL != "https://env.example.com/api" {
		t.Fatalf("env server URL not applied, got %q", cfg.Server.BaseURL)
	}
}
