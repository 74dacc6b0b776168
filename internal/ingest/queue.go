package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"atelier/internal/config"
	"atelier/internal/imaging"
	"atelier/internal/logging"
)

// Skip records a file that was left out of a batch and why. Skips are
// reported to the operator; they never abort the batch.
type Skip struct {
	Path   string
	Reason string
}

// Queue runs image files through the codec one at a time. Sequential
// processing bounds peak memory to a single decoded bitmap and guarantees
// output order matches input order.
type Queue struct {
	ceiling    int64
	logger     *slog.Logger
	processing atomic.Bool
}

// NewQueue builds an ingestion queue with the per-file ceiling from config.
func NewQueue(cfg *config.Config, logger *slog.Logger) *Queue {
	return &Queue{
		ceiling: cfg.MaxUploadBytes(),
		logger:  logging.NewComponentLogger(logger, "ingest"),
	}
}

// Processing reports whether a batch is currently running.
func (q *Queue) Processing() bool {
	return q.processing.Load()
}

// Ingest encodes each file through the codec preset, in order. Oversized and
// undecodable files are skipped and reported; the returned encoded strings
// preserve the relative order of their inputs. The only error returned is
// context cancellation.
func (q *Queue) Ingest(ctx context.Context, paths []string, preset imaging.Preset) ([]string, []Skip, error) {
	q.processing.Store(true)
	defer q.processing.Store(false)

	batchID := uuid.NewString()
	log := q.logger.With(slog.String(logging.FieldBatchID, batchID), slog.String("preset", preset.Name))

	encoded := make([]string, 0, len(paths))
	var skips []Skip
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return encoded, skips, err
		}

		info, err := os.Stat(path)
		if err != nil {
			skips = append(skips, Skip{Path: path, Reason: fmt.Sprintf("unreadable: %v", err)})
			log.Warn("skipping unreadable file", slog.String("file", filepath.Base(path)), logging.Error(err))
			continue
		}
		// Size gate before decode: a file this large would never fit the
		// storage quota, so don't waste the decode work.
		if info.Size() > q.ceiling {
			skips = append(skips, Skip{Path: path, Reason: fmt.Sprintf("%d bytes exceeds the %d MiB ceiling", info.Size(), q.ceiling/(1024*1024))})
			log.Warn("skipping oversized file",
				slog.String("file", filepath.Base(path)),
				slog.Int64("bytes", info.Size()),
				slog.Int64("ceiling", q.ceiling),
			)
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			skips = append(skips, Skip{Path: path, Reason: fmt.Sprintf("unreadable: %v", err)})
			log.Warn("skipping unreadable file", slog.String("file", filepath.Base(path)), logging.Error(err))
			continue
		}

		result := imaging.Encode(raw, preset)
		if result == "" {
			skips = append(skips, Skip{Path: path, Reason: "not a decodable image"})
			log.Warn("skipping undecodable image", slog.String("file", filepath.Base(path)))
			continue
		}

		encoded = append(encoded, result)
		log.Debug("image embedded",
			slog.String("file", filepath.Base(path)),
			slog.Int("input_bytes", len(raw)),
			slog.Int("encoded_bytes", len(result)),
		)
	}

	log.Info("batch complete", slog.Int("embedded", len(encoded)), slog.Int("skipped", len(skips)))
	return encoded, skips, nil
}
