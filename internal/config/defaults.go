package config

const (
	defaultDataDir           = "~/.local/share/atelier"
	defaultLogDir            = "~/.local/share/atelier/logs"
	defaultExportDir         = "~/atelier-exports"
	defaultStorageQuotaKiB   = 5120
	defaultStorageDebounceMS = 500
	defaultGalleryMaxWidth   = 1000
	defaultGalleryQuality    = 0.6
	defaultThumbnailMaxWidth = 800
	defaultThumbnailQuality  = 0.5
	defaultMaxUploadMiB      = 10
	defaultNotifyTimeout     = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		Storage: Storage{
			QuotaKiB:   defaultStorageQuotaKiB,
			DebounceMS: defaultStorageDebounceMS,
		},
		Images: Images{
			GalleryMaxWidth:   defaultGalleryMaxWidth,
			GalleryQuality:    defaultGalleryQuality,
			ThumbnailMaxWidth: defaultThumbnailMaxWidth,
			ThumbnailQuality:  defaultThumbnailQuality,
			MaxUploadMiB:      defaultMaxUploadMiB,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Quota:          true,
			Transfer:       true,
			Ingest:         true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
