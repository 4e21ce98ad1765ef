// Package services orchestrates record commits across the local SQLite
// mirror and the async sheet-sync pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/storage"
)

// RecordService appends records to SQLite and publishes a sync message so
// the worker mirrors them to the sheet store. A failed publish does not fail
// the commit: the record is safe locally and the periodic drain picks it up.
type RecordService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewRecordService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// Append implements store.RecordAppender.
func (s *RecordService) Append(ctx context.Context, rec core.StoredRecord) (string, error) {
	ref, err := s.storage.Append(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("save record: %w", err)
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to parse record ID", "ref", ref, "error", err)
		return ref, nil // SQLite save succeeded
	}

	if err := s.publishSyncMessage(ctx, id, rec.Kind); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}

	return ref, nil
}

func (s *RecordService) publishSyncMessage(ctx context.Context, id int64, kind core.Kind) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishRecordSync(ctx, id, kind)
}

// Close closes both storage and AMQP connections.
func (s *RecordService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}
	return nil
}
