// Package storage provides the SQLite mirror of the record store. Records
// land here first when the sqlite backend is selected; a worker drains the
// unsynced ones into Google Sheets.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gastos/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.RecordAppender. The returned reference is the
// numeric row ID, later carried by sync messages.
func (r *SQLiteRepository) Append(ctx context.Context, rec core.StoredRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO records (kind, date, description, amount_cents, label, user, month, year)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(rec.Kind), rec.Date, rec.Description, rec.Amount.Cents, rec.Label, rec.User, rec.Month, rec.Year)
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to SQLite",
		"id", id,
		"kind", rec.Kind,
		"label", rec.Label,
		"amount_cents", rec.Amount.Cents)

	return strconv.FormatInt(id, 10), nil
}

// ReadAll implements store.RecordReader.
func (r *SQLiteRepository) ReadAll(ctx context.Context, kind core.Kind) ([]core.StoredRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, description, amount_cents, label, user, month, year
		 FROM records WHERE kind = ? ORDER BY id`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.StoredRecord
	for rows.Next() {
		rec := core.StoredRecord{Kind: kind}
		if err := rows.Scan(&rec.Date, &rec.Description, &rec.Amount.Cents, &rec.Label, &rec.User, &rec.Month, &rec.Year); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// GetRecord loads one record by ID, for the sync worker.
func (r *SQLiteRepository) GetRecord(ctx context.Context, id int64) (core.StoredRecord, error) {
	rec := core.StoredRecord{}
	var kind string
	err := r.db.QueryRowContext(ctx,
		`SELECT kind, date, description, amount_cents, label, user, month, year
		 FROM records WHERE id = ?`, id).
		Scan(&kind, &rec.Date, &rec.Description, &rec.Amount.Cents, &rec.Label, &rec.User, &rec.Month, &rec.Year)
	if err != nil {
		return core.StoredRecord{}, fmt.Errorf("get record %d: %w", id, err)
	}
	rec.Kind = core.Kind(kind)
	return rec, nil
}

// UnsyncedRecords returns IDs of records not yet mirrored to the sheet
// store, oldest first.
func (r *SQLiteRepository) UnsyncedRecords(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM records WHERE synced = 0 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query unsynced records: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkSynced flags a record as mirrored.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE records SET synced = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark record %d synced: %w", id, err)
	}
	return nil
}

// WriteDashboard implements store.DashboardWriter against the local mirror:
// the cell set is upserted in one transaction. The balance color directive
// has no local representation and is ignored here.
func (r *SQLiteRepository) WriteDashboard(ctx context.Context, cells []core.CellUpdate, _ bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dashboard tx: %w", err)
	}
	defer tx.Rollback()

	for _, cu := range cells {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO dashboard_cells (cell, value, updated_at) VALUES (?, ?, datetime('now'))
			 ON CONFLICT(cell) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			cu.Cell, cu.Value)
		if err != nil {
			return fmt.Errorf("upsert cell %s: %w", cu.Cell, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dashboard tx: %w", err)
	}
	return nil
}
