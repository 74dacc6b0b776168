package storage_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"atelier/internal/storage"
	"atelier/internal/testsupport"
)

func TestWriteReadRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	payload := []byte(`{"projects":[]}`)
	if err := store.Write(ctx, storage.DatasetKey, payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	value, ok, err := store.Read(ctx, storage.DatasetKey)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !ok {
		t.Fatal("expected slot to exist")
	}
	if !bytes.Equal(value, payload) {
		t.Fatalf("unexpected payload: %s", value)
	}
}

func TestReadMissingSlot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, ok, err := store.Read(context.Background(), storage.DatasetKey)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if ok {
		t.Fatal("expected missing slot")
	}
}

func TestWriteOverQuotaPreservesPrevious(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithQuotaKiB(64))
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	small := []byte(`{"projects":[]}`)
	if err := store.Write(ctx, storage.DatasetKey, small); err != nil {
		t.Fatalf("small write failed: %v", err)
	}

	huge := bytes.Repeat([]byte("x"), 65*1024)
	err := store.Write(ctx, storage.DatasetKey, huge)
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	value, ok, err := store.Read(ctx, storage.DatasetKey)
	if err != nil || !ok {
		t.Fatalf("Read after failed write: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(value, small) {
		t.Fatal("expected previous payload preserved after quota failure")
	}

	// A smaller retry succeeds.
	if err := store.Write(ctx, storage.DatasetKey, []byte(`{"projects":[],"tagline":"t"}`)); err != nil {
		t.Fatalf("retry write failed: %v", err)
	}
}

func TestOpenReopensExistingDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	ctx := context.Background()
	if err := store.Write(ctx, storage.DatasetKey, []byte("persisted")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	value, ok, err := reopened.Read(ctx, storage.DatasetKey)
	if err != nil || !ok {
		t.Fatalf("Read after reopen: ok=%v err=%v", ok, err)
	}
	if string(value) != "persisted" {
		t.Fatalf("unexpected value after reopen: %s", value)
	}
}

func TestOpenRefusesSecondLockHolder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	_, err := storage.Open(cfg)
	if !errors.Is(err, storage.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestDeleteAndUsage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := store.Write(ctx, storage.DatasetKey, []byte("0123456789")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	usage, err := store.Usage(ctx)
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if usage.Slots != 1 || usage.UsedBytes != 10 {
		t.Fatalf("unexpected usage: %+v", usage)
	}
	if usage.QuotaBytes != cfg.QuotaBytes() {
		t.Fatalf("expected quota %d, got %d", cfg.QuotaBytes(), usage.QuotaBytes)
	}
	if usage.UpdatedAt.IsZero() {
		t.Fatal("expected usage timestamp")
	}

	removed, err := store.Delete(ctx, storage.DatasetKey)
	if err != nil || !removed {
		t.Fatalf("Delete: removed=%v err=%v", removed, err)
	}
	removed, err = store.Delete(ctx, storage.DatasetKey)
	if err != nil || removed {
		t.Fatalf("second Delete: removed=%v err=%v", removed, err)
	}
}

func TestCheckHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if err := store.Write(ctx, storage.DatasetKey, []byte(`{"projects":[]}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	health, err := store.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TableExists {
		t.Fatalf("unexpected health: %+v", health)
	}
	if !health.DatasetPresent || health.DatasetBytes == 0 {
		t.Fatalf("expected dataset presence in health: %+v", health)
	}
	if !health.IntegrityCheck {
		t.Fatal("expected integrity check to pass")
	}
}
