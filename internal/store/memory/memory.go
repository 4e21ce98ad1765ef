// Package memory provides an in-memory store adapter used by tests and the
// default development backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"gastos/internal/core"
)

type Store struct {
	mu       sync.Mutex
	expenses []core.StoredRecord
	incomes  []core.StoredRecord

	// Last applied dashboard write-set, kept for inspection.
	dashboard  []core.CellUpdate
	balanceOK  bool
	dashWrites int
}

func New() *Store {
	return &Store{}
}

// Append stores the record and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, r core.StoredRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Kind == core.Income {
		s.incomes = append(s.incomes, r)
		return fmt.Sprintf("mem:ingresos:%d", len(s.incomes)), nil
	}
	s.expenses = append(s.expenses, r)
	return fmt.Sprintf("mem:gastos:%d", len(s.expenses)), nil
}

func (s *Store) ReadAll(_ context.Context, kind core.Kind) ([]core.StoredRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.expenses
	if kind == core.Income {
		src = s.incomes
	}
	out := make([]core.StoredRecord, len(src))
	copy(out, src)
	return out, nil
}

func (s *Store) WriteDashboard(_ context.Context, cells []core.CellUpdate, balanceNonNegative bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = append([]core.CellUpdate(nil), cells...)
	s.balanceOK = balanceNonNegative
	s.dashWrites++
	return nil
}

// Dashboard returns the last applied write-set and balance color flag.
func (s *Store) Dashboard() ([]core.CellUpdate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.CellUpdate(nil), s.dashboard...), s.balanceOK
}

// DashboardWrites returns how many write-sets have been applied.
func (s *Store) DashboardWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dashWrites
}
