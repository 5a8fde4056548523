package worker

import (
	"context"
	"path/filepath"
	"testing"

	"hotzaot/internal/amqp"
	"hotzaot/internal/storage"
)

func TestHandleClassification(t *testing.T) {
	repo, err := storage.NewClassificationRepository(filepath.Join(t.TempDir(), "class.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	defer repo.Close()

	w := NewSyncWorker(repo)
	ctx := context.Background()

	msg := amqp.NewClassificationMessage("run-1", "Coffee", "Food")
	if err := w.HandleClassification(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	category, ok, err := repo.Get(ctx, "Coffee")
	if err != nil || !ok || category != "Food" {
		t.Fatalf("get = %q, %v, %v", category, ok, err)
	}

	// A later message for the same name overwrites.
	if err := w.HandleClassification(ctx, amqp.NewClassificationMessage("run-2", "Coffee", "Drinks")); err != nil {
		t.Fatalf("handle overwrite: %v", err)
	}
	category, _, _ = repo.Get(ctx, "Coffee")
	if category != "Drinks" {
		t.Fatalf("category = %q, want Drinks", category)
	}
}
