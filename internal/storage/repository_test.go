package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *ClassificationRepository {
	t.Helper()
	repo, err := NewClassificationRepository(filepath.Join(t.TempDir(), "class.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestUpsertAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "Coffee", "Food"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	category, ok, err := repo.Get(ctx, "Coffee")
	if err != nil || !ok || category != "Food" {
		t.Fatalf("get = %q, %v, %v", category, ok, err)
	}

	// Overwrite on conflict.
	if err := repo.Upsert(ctx, "Coffee", "Drinks"); err != nil {
		t.Fatalf("upsert overwrite: %v", err)
	}
	category, _, err = repo.Get(ctx, "Coffee")
	if err != nil || category != "Drinks" {
		t.Fatalf("after overwrite: %q, %v", category, err)
	}
}

func TestGetMissing(t *testing.T) {
	repo := newTestRepo(t)
	_, ok, err := repo.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("missing name should not resolve")
	}
}

func TestUpsertAllAndLoad(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	learned := map[string]string{
		"Coffee": "Food",
		"Bus":    "Transport",
		"Rent":   "Housing",
	}
	if err := repo.UpsertAll(ctx, learned); err != nil {
		t.Fatalf("upsert all: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(learned) {
		t.Fatalf("loaded %d entries, want %d", len(got), len(learned))
	}
	for name, want := range learned {
		if got[name] != want {
			t.Fatalf("%s = %q, want %q", name, got[name], want)
		}
	}
}

func TestUpsertAllEmptyIsNoOp(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.UpsertAll(context.Background(), nil); err != nil {
		t.Fatalf("empty upsert: %v", err)
	}
}
