package persist_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"atelier/internal/logging"
	"atelier/internal/persist"
	"atelier/internal/state"
	"atelier/internal/storage"
	"atelier/internal/testsupport"
)

type recordingNotifier struct {
	mu     sync.Mutex
	quota  int
	errors int
}

func (r *recordingNotifier) NotifyQuotaExceeded(context.Context, int64, int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quota++
	return nil
}

func (r *recordingNotifier) NotifyIngestCompleted(context.Context, int, int) error { return nil }

func (r *recordingNotifier) NotifyExportCompleted(context.Context, string) error { return nil }

func (r *recordingNotifier) NotifyImportCompleted(context.Context, int) error { return nil }

func (r *recordingNotifier) NotifyError(context.Context, error, string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors++
	return nil
}

func (r *recordingNotifier) TestNotification(context.Context) error { return nil }

func (r *recordingNotifier) quotaCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota
}

func TestLoadMissingSlotReturnsDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	loaded := persist.Load(context.Background(), store, logging.NewNop())
	if !reflect.DeepEqual(loaded, state.Default()) {
		t.Fatal("expected default dataset for missing slot")
	}
}

func TestLoadCorruptPayloadReturnsDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	cases := map[string]string{
		"truncated json":  `{"projects":[{"id":"a"`,
		"wrong type":      `{"projects":"nope"}`,
		"missing projects": `{"siteTitle":"X"}`,
		"null projects":   `{"projects":null}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if err := store.Write(ctx, storage.DatasetKey, []byte(payload)); err != nil {
				t.Fatalf("seed write: %v", err)
			}
			loaded := persist.Load(ctx, store, logging.NewNop())
			if !reflect.DeepEqual(loaded, state.Default()) {
				t.Fatalf("expected default dataset for %s", name)
			}
		})
	}
}

func TestLoadMergesOverDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	payload := `{"projects":[{"id":"p1","title":"Solo"}],"siteTitle":"CUSTOM"}`
	if err := store.Write(ctx, storage.DatasetKey, []byte(payload)); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	loaded := persist.Load(ctx, store, logging.NewNop())
	if loaded.SiteTitle != "CUSTOM" {
		t.Fatalf("expected overridden title, got %q", loaded.SiteTitle)
	}
	if len(loaded.Projects) != 1 || loaded.Projects[0].ID != "p1" {
		t.Fatalf("unexpected projects: %#v", loaded.Projects)
	}
	if !reflect.DeepEqual(loaded.Services, state.Default().Services) {
		t.Fatal("expected default services preserved by merge")
	}
}

func TestPersistThenLoadRoundTrips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	snapshot := state.AddProject(state.Default(), state.Project{
		ID:        "rt",
		Title:     "Round Trip",
		Category:  "Web",
		Status:    state.StatusCompleted,
		ImageURLs: []string{"data:image/jpeg;base64,QUJD"},
	})

	sync := persist.NewSynchronizer(cfg, store, logging.NewNop(), &recordingNotifier{})
	defer sync.Close()
	sync.Observe(snapshot)
	if err := sync.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	loaded := persist.Load(ctx, store, logging.NewNop())
	if !reflect.DeepEqual(loaded, snapshot) {
		t.Fatal("expected loaded state to deep-equal the persisted snapshot")
	}
}

func TestDebounceCollapsesBurstIntoFinalSnapshot(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDebounceMS(300))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	sync := persist.NewSynchronizer(cfg, store, logging.NewNop(), &recordingNotifier{})
	defer sync.Close()

	base := state.Default()
	sync.Observe(state.UpdateSettings(base, "A", "first"))
	time.Sleep(200 * time.Millisecond)
	sync.Observe(state.UpdateSettings(base, "B", "second"))

	if !sync.Syncing() {
		t.Fatal("expected syncing signal while pending")
	}

	// The second observation restarted the window, so nothing is written yet.
	time.Sleep(200 * time.Millisecond)
	if _, ok, _ := store.Read(ctx, storage.DatasetKey); ok {
		t.Fatal("expected no write before the debounce window elapsed")
	}

	time.Sleep(300 * time.Millisecond)
	raw, ok, err := store.Read(ctx, storage.DatasetKey)
	if err != nil || !ok {
		t.Fatalf("expected write after window: ok=%v err=%v", ok, err)
	}
	var written state.AppState
	if err := json.Unmarshal(raw, &written); err != nil {
		t.Fatalf("unmarshal written payload: %v", err)
	}
	if written.SiteTitle != "B" || written.Tagline != "second" {
		t.Fatalf("expected final snapshot persisted, got %q/%q", written.SiteTitle, written.Tagline)
	}
	if sync.Syncing() {
		t.Fatal("expected syncing signal cleared after write")
	}
	if err := sync.LastError(); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
}

func TestQuotaExceededKeepsStateAndAllowsRetry(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithQuotaKiB(64))
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	notifier := &recordingNotifier{}
	sync := persist.NewSynchronizer(cfg, store, logging.NewNop(), notifier)
	defer sync.Close()

	big := state.Default()
	big.Projects[0].ImageURLs = []string{"data:image/jpeg;base64," + strings.Repeat("A", 70*1024)}
	sync.Observe(big)
	err := sync.Flush(ctx)
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if notifier.quotaCount() != 1 {
		t.Fatalf("expected one quota notification, got %d", notifier.quotaCount())
	}
	if _, ok, _ := store.Read(ctx, storage.DatasetKey); ok {
		t.Fatal("expected slot untouched after quota failure")
	}

	// The operator deletes the oversized image; the next write fits.
	small := state.DeleteProject(big, big.Projects[0].ID)
	sync.Observe(small)
	if err := sync.Flush(ctx); err != nil {
		t.Fatalf("retry flush failed: %v", err)
	}
	if _, ok, _ := store.Read(ctx, storage.DatasetKey); !ok {
		t.Fatal("expected slot written after retry")
	}
}

func TestFlushWithoutPendingIsNoOp(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	sync := persist.NewSynchronizer(cfg, store, logging.NewNop(), &recordingNotifier{})
	defer sync.Close()
	if err := sync.Flush(context.Background()); err != nil {
		t.Fatalf("expected nil from idle flush, got %v", err)
	}
}

func TestCloseDiscardsPending(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDebounceMS(5000))
	store := testsupport.MustOpenStore(t, cfg)

	sync := persist.NewSynchronizer(cfg, store, logging.NewNop(), &recordingNotifier{})
	sync.Observe(state.Default())
	sync.Close()

	if _, ok, _ := store.Read(context.Background(), storage.DatasetKey); ok {
		t.Fatal("expected pending snapshot discarded by Close")
	}
}
