package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskdeck/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.API.BaseURL != config.DefaultBaseURL {
		t.Errorf("expected base url %q, got %q", config.DefaultBaseURL, cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 0 {
		t.Errorf("expected no timeout, got %s", cfg.API.RequestTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %q", cfg.Log.Level)
	}
	if cfg.LogPath() != filepath.Join(dir, config.DefaultLogFile) {
		t.Errorf("unexpected log path %q", cfg.LogPath())
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := "api:\n  base_url: https://tasks.example.com\n  request_timeout: 3s\nlog:\n  level: debug\n  file: /tmp/td.log\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://tasks.example.com" {
		t.Errorf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 3*time.Second {
		t.Errorf("unexpected timeout %s", cfg.API.RequestTimeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("unexpected level %q", cfg.Log.Level)
	}
	if cfg.LogPath() != "/tmp/td.log" {
		t.Errorf("absolute log path should be kept, got %q", cfg.LogPath())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_API_BASE_URL", "http://127.0.0.1:9999")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:9999" {
		t.Errorf("expected env override, got %q", cfg.API.BaseURL)
	}
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	dir := t.TempDir()
	content := "api:\n  base_url: localhost:8000\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(dir); err == nil {
		t.Error("expected error for base url without scheme")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	if got := config.DefaultConfigDir(); got != filepath.Join("/xdg", config.AppName) {
		t.Errorf("unexpected dir %q", got)
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg, _ := config.New(t.TempDir())
	cfg.API.RequestTimeout = -time.Second

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative timeout")
	}
}
