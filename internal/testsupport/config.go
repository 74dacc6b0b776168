package testsupport

import (
	"path/filepath"
	"testing"

	"atelier/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	cfg.Storage.DebounceMS = 25

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithQuotaKiB overrides the storage quota on the test config.
func WithQuotaKiB(kib int) ConfigOption {
	return func(c *config.Config) {
		c.Storage.QuotaKiB = kib
	}
}

// WithDebounceMS overrides the persistence debounce window on the test config.
func WithDebounceMS(ms int) ConfigOption {
	return func(c *config.Config) {
		c.Storage.DebounceMS = ms
	}
}

// WithPasscode sets the operator passcode on the test config.
func WithPasscode(code string) ConfigOption {
	return func(c *config.Config) {
		c.Auth.Passcode = code
	}
}
