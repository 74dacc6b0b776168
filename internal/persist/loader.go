package persist

import (
	"context"
	"encoding/json"
	"log/slog"

	"atelier/internal/logging"
	"atelier/internal/state"
	"atelier/internal/storage"
)

// Load reads the persisted dataset and falls back to the built-in default on
// absence or corruption. Corruption is recoverable by construction: the
// operator cannot fix a broken payload, so startup substitutes the default
// and logs instead of failing.
func Load(ctx context.Context, store *storage.Store, logger *slog.Logger) state.AppState {
	log := logging.NewComponentLogger(logger, "loader")

	raw, ok, err := store.Read(ctx, storage.DatasetKey)
	if err != nil {
		log.Warn("reading persisted dataset failed, using defaults", logging.Error(err))
		return state.Default()
	}
	if !ok {
		log.Debug("no persisted dataset, using defaults")
		return state.Default()
	}

	var partial state.Partial
	if err := json.Unmarshal(raw, &partial); err != nil {
		log.Warn("persisted dataset is malformed, using defaults", logging.Error(err))
		return state.Default()
	}
	if !partial.HasProjects() {
		log.Warn("persisted dataset failed shape check, using defaults")
		return state.Default()
	}

	merged := partial.MergeOverDefault()
	log.Debug("dataset loaded",
		slog.Int("projects", len(merged.Projects)),
		slog.Int("archive_items", len(merged.ArchiveItems)),
		slog.Int("bytes", len(raw)),
	)
	return merged
}
