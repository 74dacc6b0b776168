package testsupport

import (
	"testing"

	"atelier/internal/config"
	"atelier/internal/storage"
)

// MustOpenStore opens the slot store for the supplied config and registers
// cleanup with the test lifecycle.
func MustOpenStore(t testing.TB, cfg *config.Config) *storage.Store {
	t.Helper()

	store, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
