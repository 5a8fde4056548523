// Package worker applies published classification events to the durable
// SQLite store.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"hotzaot/internal/amqp"
	"hotzaot/internal/storage"
)

// SyncWorker consumes learned-classification messages and upserts them
// into the classification repository. Last writer wins, same as
// re-classifying interactively.
type SyncWorker struct {
	repo *storage.ClassificationRepository
}

func NewSyncWorker(repo *storage.ClassificationRepository) *SyncWorker {
	return &SyncWorker{repo: repo}
}

// HandleClassification processes one message. Errors bubble up so the
// consumer can requeue the delivery.
func (w *SyncWorker) HandleClassification(ctx context.Context, msg *amqp.ClassificationMessage) error {
	slog.InfoContext(ctx, "Applying classification",
		"run_id", msg.RunID,
		"name", msg.Name,
		"category", msg.Category)

	if err := w.repo.Upsert(ctx, msg.Name, msg.Category); err != nil {
		return fmt.Errorf("apply classification: %w", err)
	}
	return nil
}
