package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Storage.QuotaKiB != defaultStorageQuotaKiB {
		t.Fatalf("expected default quota, got %d", cfg.Storage.QuotaKiB)
	}
	if cfg.Images.GalleryMaxWidth != defaultGalleryMaxWidth {
		t.Fatalf("expected default gallery width, got %d", cfg.Images.GalleryMaxWidth)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[storage]
quota_kib = 256
debounce_ms = 50

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved path %s, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Storage.QuotaKiB != 256 {
		t.Fatalf("expected quota 256, got %d", cfg.Storage.QuotaKiB)
	}
	if cfg.QuotaBytes() != 256*1024 {
		t.Fatalf("unexpected quota bytes: %d", cfg.QuotaBytes())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"tiny quota", func(c *Config) { c.Storage.QuotaKiB = 16 }, "storage.quota_kib"},
		{"zero gallery width", func(c *Config) { c.Images.GalleryMaxWidth = 0 }, "gallery_max_width"},
		{"quality above one", func(c *Config) { c.Images.ThumbnailQuality = 1.5 }, "thumbnail_quality"},
		{"bare ntfy topic", func(c *Config) { c.Notifications.NtfyTopic = "my-topic" }, "ntfy_topic"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "logfmt" }, "logging.format"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestPasscodeFallsBackToEnv(t *testing.T) {
	t.Setenv("ATELIER_PASSCODE", "hunter2")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cfg.Auth.Passcode != "hunter2" {
		t.Fatalf("expected passcode from env, got %q", cfg.Auth.Passcode)
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[storage]") {
		t.Fatal("expected sample to contain storage section")
	}
}
