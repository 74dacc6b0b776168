package cms

import (
	"context"
	"log/slog"
	"reflect"

	"atelier/internal/config"
	"atelier/internal/logging"
	"atelier/internal/notifications"
	"atelier/internal/persist"
	"atelier/internal/state"
	"atelier/internal/storage"
)

// Session owns the in-memory dataset for the lifetime of one process: it
// loads the snapshot at open, routes every mutation through the pure state
// mutators, and hands each new snapshot to the synchronizer. There is no
// ambient singleton; callers thread the session explicitly.
type Session struct {
	cfg      *config.Config
	store    *storage.Store
	sync     *persist.Synchronizer
	logger   *slog.Logger
	snapshot state.AppState
}

// Open acquires the storage slot, loads the persisted dataset (or its
// default), and starts the persistence synchronizer. A nil notifier selects
// the configured one.
func Open(cfg *config.Config, logger *slog.Logger, notifier notifications.Service) (*Session, error) {
	store, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	snapshot := persist.Load(context.Background(), store, logger)
	return &Session{
		cfg:      cfg,
		store:    store,
		sync:     persist.NewSynchronizer(cfg, store, logger, notifier),
		logger:   logging.NewComponentLogger(logger, "session"),
		snapshot: snapshot,
	}, nil
}

// Snapshot returns the current dataset snapshot. The value is safe to hold
// across later mutations; mutators never edit in place.
func (s *Session) Snapshot() state.AppState {
	return s.snapshot
}

// Store exposes the underlying slot store for status and import paths.
func (s *Session) Store() *storage.Store {
	return s.store
}

// Syncing reports whether a persistence write is pending or in progress.
func (s *Session) Syncing() bool {
	return s.sync.Syncing()
}

// Apply runs a pure mutator against the current snapshot. When the mutator
// changed anything, the new snapshot replaces the current one and is handed
// to the synchronizer; a no-op result is not observed and schedules no write.
func (s *Session) Apply(mutate func(state.AppState) state.AppState) bool {
	next := mutate(s.snapshot)
	if reflect.DeepEqual(s.snapshot, next) {
		return false
	}
	s.snapshot = next
	s.sync.Observe(next)
	return true
}

// AddProject prepends a project to the dataset.
func (s *Session) AddProject(p state.Project) {
	s.Apply(func(snapshot state.AppState) state.AppState {
		return state.AddProject(snapshot, p)
	})
	s.logger.Info("project added", slog.String(logging.FieldItemID, p.ID), slog.String(logging.FieldCollection, "projects"))
}

// UpdateProject replaces the project with the given id. Unknown ids no-op.
func (s *Session) UpdateProject(id string, p state.Project) bool {
	changed := s.Apply(func(snapshot state.AppState) state.AppState {
		return state.UpdateProject(snapshot, id, p)
	})
	if changed {
		s.logger.Info("project updated", slog.String(logging.FieldItemID, id), slog.String(logging.FieldCollection, "projects"))
	}
	return changed
}

// DeleteProject removes the project with the given id. Unknown ids no-op.
func (s *Session) DeleteProject(id string) bool {
	changed := s.Apply(func(snapshot state.AppState) state.AppState {
		return state.DeleteProject(snapshot, id)
	})
	if changed {
		s.logger.Info("project deleted", slog.String(logging.FieldItemID, id), slog.String(logging.FieldCollection, "projects"))
	}
	return changed
}

// AddArchiveItem prepends an archive item to the dataset.
func (s *Session) AddArchiveItem(item state.ArchiveItem) {
	s.Apply(func(snapshot state.AppState) state.AppState {
		return state.AddArchiveItem(snapshot, item)
	})
	s.logger.Info("archive item added", slog.String(logging.FieldItemID, item.ID), slog.String(logging.FieldCollection, "archive"))
}

// UpdateArchiveItem replaces the archive item with the given id. Unknown ids no-op.
func (s *Session) UpdateArchiveItem(id string, item state.ArchiveItem) bool {
	changed := s.Apply(func(snapshot state.AppState) state.AppState {
		return state.UpdateArchiveItem(snapshot, id, item)
	})
	if changed {
		s.logger.Info("archive item updated", slog.String(logging.FieldItemID, id), slog.String(logging.FieldCollection, "archive"))
	}
	return changed
}

// DeleteArchiveItem removes the archive item with the given id. Unknown ids no-op.
func (s *Session) DeleteArchiveItem(id string) bool {
	changed := s.Apply(func(snapshot state.AppState) state.AppState {
		return state.DeleteArchiveItem(snapshot, id)
	})
	if changed {
		s.logger.Info("archive item deleted", slog.String(logging.FieldItemID, id), slog.String(logging.FieldCollection, "archive"))
	}
	return changed
}

// UpdateSettings replaces the site title and tagline.
func (s *Session) UpdateSettings(title, tagline string) {
	s.Apply(func(snapshot state.AppState) state.AppState {
		return state.UpdateSettings(snapshot, title, tagline)
	})
}

// Close flushes any pending write and releases the storage slot. The flush
// error is returned so a command can report an unpersisted final edit.
func (s *Session) Close(ctx context.Context) error {
	flushErr := s.sync.Flush(ctx)
	s.sync.Close()
	if closeErr := s.store.Close(); closeErr != nil && flushErr == nil {
		flushErr = closeErr
	}
	return flushErr
}
