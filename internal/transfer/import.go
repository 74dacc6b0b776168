package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"atelier/internal/config"
	"atelier/internal/logging"
	"atelier/internal/notifications"
	"atelier/internal/storage"
)

// ErrNotDataset marks an import file that does not carry a projects list.
var ErrNotDataset = errors.New("transfer: file is not an exported dataset")

// Import replaces the stored dataset with the contents of an export file.
// Only the presence of a projects list is checked; the raw payload then goes
// straight into the storage slot so a later load sees exactly what the file
// said. The quota still applies. Returns the number of imported projects.
func Import(ctx context.Context, cfg *config.Config, store *storage.Store, path string, logger *slog.Logger, notifier notifications.Service) (int, error) {
	log := logging.NewComponentLogger(logger, "transfer")

	payload, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read import file: %w", err)
	}

	var probe struct {
		Projects []json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotDataset, err)
	}
	if probe.Projects == nil {
		return 0, fmt.Errorf("%w: missing projects list", ErrNotDataset)
	}

	if err := store.Write(ctx, storage.DatasetKey, payload); err != nil {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			notifier.NotifyQuotaExceeded(ctx, int64(len(payload)), cfg.QuotaBytes())
		}
		return 0, err
	}

	log.Info("dataset imported",
		slog.String("path", path),
		slog.Int("bytes", len(payload)),
		slog.Int("projects", len(probe.Projects)))
	notifier.NotifyImportCompleted(ctx, len(probe.Projects))
	return len(probe.Projects), nil
}
