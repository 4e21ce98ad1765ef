// Package worker mirrors locally stored records to the sheet store.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"gastos/internal/amqp"
	"gastos/internal/storage"
	"gastos/internal/store"
)

// SyncWorker drains record sync messages and the unsynced backlog from the
// SQLite mirror into the sheet store.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	appender  store.RecordAppender
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, appender store.RecordAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		appender:  appender,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID, "kind", msg.Kind)
	return w.syncRecord(ctx, msg.ID)
}

// ProcessPending mirrors any unsynced records, oldest first. Called
// periodically and on startup to cover messages lost while the worker was
// down.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	ids, err := w.storage.UnsyncedRecords(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced records: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Syncing pending records", "count", len(ids))
	for _, id := range ids {
		if err := w.syncRecord(ctx, id); err != nil {
			// Keep going; the record stays unsynced and is retried on
			// the next cycle.
			slog.ErrorContext(ctx, "Failed to sync record", "id", id, "error", err)
		}
	}
	return nil
}

func (w *SyncWorker) syncRecord(ctx context.Context, id int64) error {
	rec, err := w.storage.GetRecord(ctx, id)
	if err != nil {
		return fmt.Errorf("get record from storage: %w", err)
	}

	ref, err := w.appender.Append(ctx, rec)
	if err != nil {
		return fmt.Errorf("append record to sheet store: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark record synced: %w", err)
	}

	slog.InfoContext(ctx, "Record synced",
		"id", strconv.FormatInt(id, 10),
		"kind", rec.Kind,
		"row_ref", ref)
	return nil
}
