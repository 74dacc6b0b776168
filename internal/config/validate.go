package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.QuotaKiB < 64 {
		return fmt.Errorf("storage.quota_kib must be at least 64, got %d", c.Storage.QuotaKiB)
	}
	if c.Storage.DebounceMS > 60_000 {
		return fmt.Errorf("storage.debounce_ms must be at most 60000, got %d", c.Storage.DebounceMS)
	}
	return nil
}

func (c *Config) validateImages() error {
	if c.Images.GalleryMaxWidth <= 0 {
		return errors.New("images.gallery_max_width must be positive")
	}
	if c.Images.ThumbnailMaxWidth <= 0 {
		return errors.New("images.thumbnail_max_width must be positive")
	}
	for name, quality := range map[string]float64{
		"images.gallery_quality":   c.Images.GalleryQuality,
		"images.thumbnail_quality": c.Images.ThumbnailQuality,
	} {
		if quality <= 0 || quality > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", name, quality)
		}
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if topic := strings.TrimSpace(c.Notifications.NtfyTopic); topic != "" {
		if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
			return fmt.Errorf("notifications.ntfy_topic must be a full URL, got %q", topic)
		}
	}
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
