// Package store declares the outbound ports the engine needs from the
// tabular persistence backend. Adapters live in subpackages.
package store

import (
	"context"

	"gastos/internal/core"
)

type (
	// RecordAppender appends one confirmed record to the backing sheet
	// for its kind and returns an adapter-specific row reference.
	RecordAppender interface {
		Append(ctx context.Context, r core.StoredRecord) (rowRef string, err error)
	}

	// RecordReader reads back every persisted record of one kind. Rows
	// are interpreted via the store's first-row header labels; malformed
	// rows are skipped, never surfaced as errors.
	RecordReader interface {
		ReadAll(ctx context.Context, kind core.Kind) ([]core.StoredRecord, error)
	}

	// DashboardWriter applies a dashboard write-set. Every call fully
	// overwrites the same fixed cell set, so there is no read-modify-write
	// hazard. balanceNonNegative selects the balance cell color.
	DashboardWriter interface {
		WriteDashboard(ctx context.Context, cells []core.CellUpdate, balanceNonNegative bool) error
	}
)
