package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"atelier/internal/config"
	"atelier/internal/logging"
	"atelier/internal/notifications"
	"atelier/internal/state"
	"atelier/internal/storage"
)

const writeTimeout = 10 * time.Second

// Synchronizer debounces dataset snapshots into slot writes.
//
// It is a three-state machine: idle, pending (timer armed), and writing. Every
// observed snapshot replaces the pending one and restarts the debounce window,
// so a burst of rapid edits produces exactly one write carrying the final
// snapshot. An in-progress write is never cancelled; a snapshot arriving while
// writing simply arms the next window.
type Synchronizer struct {
	store    *storage.Store
	logger   *slog.Logger
	notifier notifications.Service
	window   time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *state.AppState
	writing bool
	closed  bool
	lastErr error

	writeMu sync.Mutex
	writeWG sync.WaitGroup
}

// NewSynchronizer builds a synchronizer with the debounce window from config.
func NewSynchronizer(cfg *config.Config, store *storage.Store, logger *slog.Logger, notifier notifications.Service) *Synchronizer {
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Synchronizer{
		store:    store,
		logger:   logging.NewComponentLogger(logger, "persist"),
		notifier: notifier,
		window:   time.Duration(cfg.Storage.DebounceMS) * time.Millisecond,
	}
}

// Observe records a new snapshot and (re)arms the debounce timer. Only the
// most recent snapshot is ever written; intermediate snapshots are dropped.
func (s *Synchronizer) Observe(snapshot state.AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = &snapshot
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.fire)
}

// Syncing reports whether a write is pending or in progress.
func (s *Synchronizer) Syncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil || s.writing
}

// LastError returns the outcome of the most recent write attempt.
func (s *Synchronizer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Flush writes any pending snapshot immediately, bypassing the debounce
// window, and waits for an in-progress write to finish first. Call before
// process exit so a short-lived command never loses its final edit.
func (s *Synchronizer) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	snapshot := s.pending
	s.pending = nil
	s.mu.Unlock()

	s.writeWG.Wait()

	if snapshot == nil {
		return s.LastError()
	}
	return s.write(ctx, *snapshot)
}

// Close stops the machine. Pending snapshots are discarded; callers that care
// should Flush first.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.mu.Unlock()
	s.writeWG.Wait()
}

func (s *Synchronizer) fire() {
	s.mu.Lock()
	if s.closed || s.pending == nil {
		s.mu.Unlock()
		return
	}
	snapshot := *s.pending
	s.pending = nil
	s.writing = true
	s.timer = nil
	s.writeWG.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.writeWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		_ = s.write(ctx, snapshot)
		s.mu.Lock()
		s.writing = false
		s.mu.Unlock()
	}()
}

func (s *Synchronizer) write(ctx context.Context, snapshot state.AppState) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		err = fmt.Errorf("serialize dataset: %w", err)
		s.recordResult(err)
		return err
	}

	err = s.store.Write(ctx, storage.DatasetKey, payload)
	switch {
	case errors.Is(err, storage.ErrQuotaExceeded):
		s.logger.Warn("dataset exceeds storage quota, keeping in-memory state",
			slog.Int("payload_bytes", len(payload)),
			slog.Int64("quota_bytes", s.store.Quota()),
		)
		_ = s.notifier.NotifyQuotaExceeded(ctx, int64(len(payload)), s.store.Quota())
	case err != nil:
		s.logger.Error("dataset write failed", logging.Error(err))
		_ = s.notifier.NotifyError(ctx, err, "persistence")
	default:
		s.logger.Debug("dataset written", slog.Int("bytes", len(payload)))
	}
	s.recordResult(err)
	return err
}

func (s *Synchronizer) recordResult(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
