// Package backend selects and assembles the record store implementation.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
	"gastos/internal/config"
	"gastos/internal/services"
	"gastos/internal/storage"
	"gastos/internal/store"
	gsheet "gastos/internal/store/google"
	"gastos/internal/store/memory"
)

// Backend bundles the three store ports behind one value.
type Backend struct {
	store.RecordAppender
	store.RecordReader
	store.DashboardWriter
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Type names the supported backends.
type Type string

const (
	Memory Type = "memory"
	Sheets Type = "sheets"
	SQLite Type = "sqlite"
)

func (t Type) IsValid() bool {
	switch t {
	case Memory, Sheets, SQLite:
		return true
	}
	return false
}

// New builds the backend selected by the configuration.
//
// memory: volatile, for development and tests.
// sheets: records go straight to Google Sheets; commits are synchronous.
// sqlite: records land in the local mirror and an AMQP message (when
// configured) triggers the worker to mirror them to Sheets.
func New(ctx context.Context, cfg *config.Config) (*Backend, CleanupFunc, error) {
	t := Type(cfg.DataBackend)
	switch t {
	case Memory:
		s := memory.New()
		slog.InfoContext(ctx, "Initialized memory backend")
		return &Backend{s, s, s}, func() error { return nil }, nil

	case Sheets:
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sheets backend: %w", err)
		}
		if cfg.SheetsBootstrap {
			if err := cli.EnsureSheets(ctx); err != nil {
				return nil, nil, fmt.Errorf("bootstrap sheets: %w", err)
			}
		}
		slog.InfoContext(ctx, "Initialized Google Sheets backend")
		return &Backend{cli, cli, cli}, func() error { return nil }, nil

	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}

		var amqpClient *amqp.Client
		if cfg.AMQPURL != "" {
			amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				// Records stay safe locally; the worker's periodic drain
				// covers the gap.
				slog.WarnContext(ctx, "AMQP unavailable, continuing without sync messages", "error", err)
			}
		}

		svc := services.NewRecordService(repo, amqpClient)
		slog.InfoContext(ctx, "Initialized SQLite backend", "path", cfg.SQLiteDBPath, "amqp", amqpClient != nil)
		return &Backend{svc, repo, repo}, svc.Close, nil

	default:
		return nil, nil, fmt.Errorf("invalid data backend %q", cfg.DataBackend)
	}
}
