package report

import (
	"reflect"
	"strings"
	"testing"

	"gastos/internal/core"
)

func expenseRec(date string, cents int64, category string) core.StoredRecord {
	return core.StoredRecord{
		Date:        date,
		Description: "x",
		Amount:      core.Money{Cents: cents},
		Label:       category,
		Kind:        core.Expense,
		Month:       date[:7],
		Year:        date[:4],
	}
}

func incomeRec(date string, cents int64) core.StoredRecord {
	return core.StoredRecord{
		Date:        date,
		Description: "x",
		Amount:      core.Money{Cents: cents},
		Label:       "salario",
		Kind:        core.Income,
		Month:       date[:7],
		Year:        date[:4],
	}
}

func TestSummarize(t *testing.T) {
	expenses := []core.StoredRecord{
		expenseRec("2024-05-01 10:00", 5000, "comida"),
		expenseRec("2024-05-02 11:00", 3000, "transporte"),
	}
	incomes := []core.StoredRecord{
		incomeRec("2024-05-01 09:00", 20000),
	}

	s := Summarize("2024-05", expenses, incomes)

	if s.TotalExpense.Cents != 8000 {
		t.Errorf("total expense = %d", s.TotalExpense.Cents)
	}
	if s.TotalIncome.Cents != 20000 {
		t.Errorf("total income = %d", s.TotalIncome.Cents)
	}
	if s.Balance.Cents != 12000 {
		t.Errorf("balance = %d", s.Balance.Cents)
	}
	want := []core.CategoryAmount{
		{Name: "comida", Amount: core.Money{Cents: 5000}},
		{Name: "transporte", Amount: core.Money{Cents: 3000}},
	}
	if !reflect.DeepEqual(s.ByCategory, want) {
		t.Errorf("by category = %+v", s.ByCategory)
	}
	if pct := s.Percentage(s.ByCategory[0].Amount); pct != 62.5 {
		t.Errorf("comida percentage = %v, want 62.5", pct)
	}
}

func TestSummarizeMonthPrefixFilter(t *testing.T) {
	expenses := []core.StoredRecord{
		expenseRec("2024-05-31 23:59", 1000, "comida"),
		expenseRec("2024-06-01 00:00", 9999, "comida"),
	}
	s := Summarize("2024-05", expenses, nil)
	if s.TotalExpense.Cents != 1000 {
		t.Fatalf("total expense = %d, June record leaked in", s.TotalExpense.Cents)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	expenses := []core.StoredRecord{
		expenseRec("2024-05-01 10:00", 5000, "comida"),
		expenseRec("2024-05-01 10:00", 5000, "transporte"), // tie amounts
		expenseRec("2024-05-02 10:00", 200, "otros"),
	}
	a := Summarize("2024-05", expenses, nil)
	b := Summarize("2024-05", expenses, nil)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("summaries differ:\n%+v\n%+v", a, b)
	}
}

func TestSummarizeSortedDescending(t *testing.T) {
	expenses := []core.StoredRecord{
		expenseRec("2024-05-01 10:00", 100, "otros"),
		expenseRec("2024-05-01 10:00", 900, "comida"),
		expenseRec("2024-05-01 10:00", 500, "salud"),
	}
	s := Summarize("2024-05", expenses, nil)
	for i := 1; i < len(s.ByCategory); i++ {
		if s.ByCategory[i].Amount.Cents > s.ByCategory[i-1].Amount.Cents {
			t.Fatalf("not sorted descending: %+v", s.ByCategory)
		}
	}
}

func TestSummarizeZeroExpensePercentage(t *testing.T) {
	s := Summarize("2024-05", nil, []core.StoredRecord{incomeRec("2024-05-01 09:00", 100)})
	if pct := s.Percentage(core.Money{Cents: 100}); pct != 0 {
		t.Fatalf("percentage with zero expense = %v, want 0", pct)
	}
}

func TestRenderText(t *testing.T) {
	s := Summarize("2024-05",
		[]core.StoredRecord{expenseRec("2024-05-01 10:00", 5000, "comida")},
		[]core.StoredRecord{incomeRec("2024-05-01 09:00", 20000)})

	out := RenderText(s, true)

	for _, want := range []string{
		"Resumen de 2024-05",
		"Total gastado: 50.00€",
		"Total ingresos: 200.00€",
		"Balance: 150.00€",
		"Comida: 50.00€ (100.0%)",
		"Dashboard actualizado",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary text missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(RenderText(s, false), "Dashboard actualizado") {
		t.Error("dashboard note rendered without a dashboard write")
	}
}
