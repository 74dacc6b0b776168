package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"atelier/internal/config"
)

// DatasetKey is the fixed slot the full dataset document lives under. Only the
// persist synchronizer writes it during normal operation; import writes it
// directly as a deliberate full-reset path.
const DatasetKey = "atelier-data"

// ErrQuotaExceeded marks a write whose payload would not fit the slot quota.
// The caller keeps its in-memory state and must shrink the dataset to retry.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrLocked means another process holds the data lock.
var ErrLocked = errors.New("data directory is locked by another process")

// Store is a quota-bounded key-value slot backed by SQLite. A file lock taken
// at Open gives single-writer semantics across concurrent invocations.
type Store struct {
	db    *sql.DB
	path  string
	quota int64
	lock  *flock.Flock
}

// Open initializes or connects to the slot database, acquires the data lock,
// and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, quota: cfg.QuotaBytes(), lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close releases the data lock and closes the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Quota returns the configured slot quota in bytes.
func (s *Store) Quota() int64 {
	return s.quota
}

// Read fetches the value stored under key. The second return is false when
// the slot has never been written.
func (s *Store) Read(ctx context.Context, key string) ([]byte, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key)
	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot: %w", err)
	}
	return value, true, nil
}

// Write stores value under key, enforcing the quota first. Quota failures
// leave any previous value intact.
func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	if size := int64(len(value)); size > s.quota {
		return fmt.Errorf("%w: payload %d bytes, quota %d bytes", ErrQuotaExceeded, size, s.quota)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// Delete removes the value stored under key.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Usage summarizes slot occupancy against the quota.
type Usage struct {
	UsedBytes  int64
	QuotaBytes int64
	Slots      int
	UpdatedAt  time.Time
}

// Usage reports total stored bytes and the timestamp of the newest write.
func (s *Store) Usage(ctx context.Context) (Usage, error) {
	usage := Usage{QuotaBytes: s.quota}
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1), COALESCE(SUM(LENGTH(value)), 0), COALESCE(MAX(updated_at), '') FROM slots`)
	var updatedRaw string
	if err := row.Scan(&usage.Slots, &usage.UsedBytes, &updatedRaw); err != nil {
		return usage, fmt.Errorf("slot usage: %w", err)
	}
	if updatedRaw != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
			usage.UpdatedAt = parsed
		}
	}
	return usage, nil
}
