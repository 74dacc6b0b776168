package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"atelier/internal/config"
	"atelier/internal/logging"
	"atelier/internal/notifications"
	"atelier/internal/state"
)

// Export writes the full dataset as pretty-printed JSON into the configured
// export directory and returns the file path. Files are named by export date,
// so a second export on the same day overwrites the first.
func Export(ctx context.Context, cfg *config.Config, snapshot state.AppState, logger *slog.Logger, notifier notifications.Service) (string, error) {
	log := logging.NewComponentLogger(logger, "transfer")

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.MkdirAll(cfg.Paths.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	name := fmt.Sprintf("atelier-export-%s.json", time.Now().Format("2006-01-02"))
	path := filepath.Join(cfg.Paths.ExportDir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}

	log.Info("dataset exported",
		slog.String("path", path),
		slog.Int("bytes", len(payload)),
		slog.Int("projects", len(snapshot.Projects)))
	notifier.NotifyExportCompleted(ctx, path)
	return path, nil
}
