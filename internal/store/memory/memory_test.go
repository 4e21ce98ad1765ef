package memory

import (
	"context"
	"testing"
	"time"

	"gastos/internal/core"
)

func TestAppendAndReadAll(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	ref, err := s.Append(ctx, core.NewStoredRecord(core.Expense, "comida", "almuerzo", "ana", core.Money{Cents: 5000}, now))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ref != "mem:gastos:1" {
		t.Errorf("ref = %q", ref)
	}
	if _, err := s.Append(ctx, core.NewStoredRecord(core.Income, "salario", "salario", "ana", core.Money{Cents: 200000}, now)); err != nil {
		t.Fatalf("Append income: %v", err)
	}

	exps, err := s.ReadAll(ctx, core.Expense)
	if err != nil || len(exps) != 1 {
		t.Fatalf("ReadAll expenses: %v, n=%d", err, len(exps))
	}
	incs, err := s.ReadAll(ctx, core.Income)
	if err != nil || len(incs) != 1 {
		t.Fatalf("ReadAll incomes: %v, n=%d", err, len(incs))
	}
	if incs[0].Label != "salario" {
		t.Errorf("income label = %q", incs[0].Label)
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.Append(context.Background(), core.StoredRecord{Kind: core.Expense})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestWriteDashboard(t *testing.T) {
	s := New()
	cells := []core.CellUpdate{{Cell: "B4", Value: "2024-05"}}
	if err := s.WriteDashboard(context.Background(), cells, false); err != nil {
		t.Fatal(err)
	}
	got, ok := s.Dashboard()
	if len(got) != 1 || got[0].Cell != "B4" || ok {
		t.Fatalf("dashboard = %+v ok=%v", got, ok)
	}
	if s.DashboardWrites() != 1 {
		t.Errorf("writes = %d", s.DashboardWrites())
	}
}
