package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `storage:
  backend: "sqlite"
  path: "/tmp/traffic.db"
cache:
  enabled: true
  url: "redis://localhost:6379/0"
  ttl_seconds: 120
metrics:
  prometheus_enabled: true
  prometheus_port: "2112"
api:
  addr: ":9000"
forecast:
  lookback_days: 14
  trend_hours: 6
  target_locations:
    - "LIC Circle"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"storage.backend", cfg.Storage.Backend, "sqlite"},
		{"storage.path", cfg.Storage.Path, "/tmp/traffic.db"},
		{"cache.enabled", cfg.Cache.Enabled, true},
		{"cache.ttl_seconds", cfg.Cache.TTLSeconds, 120},
		{"metrics.prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"metrics.prometheus_port", cfg.Metrics.PrometheusPort, "2112"},
		{"api.addr", cfg.API.Addr, ":9000"},
		{"forecast.lookback_days", cfg.Forecast.LookbackDays, 14},
		{"forecast.trend_hours", cfg.Forecast.TrendHours, 6},
		{"forecast.targets", len(cfg.Forecast.TargetLocations), 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: \"sqlite\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Storage.Path == "" {
		t.Error("expected default sqlite path")
	}
	if cfg.API.Addr != ":8080" {
		t.Errorf("api.addr = %q, want :8080", cfg.API.Addr)
	}
	if cfg.Forecast.LookbackDays != 30 {
		t.Errorf("lookback_days = %d, want 30", cfg.Forecast.LookbackDays)
	}
	if cfg.Forecast.TrendHours != 3 {
		t.Errorf("trend_hours = %d, want 3", cfg.Forecast.TrendHours)
	}
	if len(cfg.Forecast.TargetLocations) == 0 {
		t.Error("expected default target locations")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: \"sqlite\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TS_API__ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.API.Addr != ":7070" {
		t.Errorf("api.addr = %q, want env override :7070", cfg.API.Addr)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "storage:\n  backend: \"oracle\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown storage backend")
	}

	data = "forecast:\n  lookback_days: 900\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for excessive lookback_days")
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}
