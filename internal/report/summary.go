// Package report computes monthly aggregates from stored records and renders
// them as a chat summary and as a dashboard write-set.
package report

import (
	"fmt"
	"sort"
	"strings"

	"gastos/internal/core"
)

// Summarize filters both record sets to the target month and computes the
// monthly aggregate. Month filtering is a plain string-prefix match on the
// record date; months are always formatted as the fixed 7-character YYYY-MM,
// so prefix collisions cannot occur. Category totals come from the stored
// category field, never recomputed, and are sorted by descending amount.
func Summarize(month string, expenses, incomes []core.StoredRecord) core.MonthlySummary {
	s := core.MonthlySummary{Month: month}

	totals := map[string]int64{}
	order := make([]string, 0)
	for _, r := range expenses {
		if !strings.HasPrefix(r.Date, month) {
			continue
		}
		s.TotalExpense.Cents += r.Amount.Cents
		label := r.Label
		if label == "" {
			label = "otros"
		}
		if _, seen := totals[label]; !seen {
			order = append(order, label)
		}
		totals[label] += r.Amount.Cents
	}
	for _, r := range incomes {
		if !strings.HasPrefix(r.Date, month) {
			continue
		}
		s.TotalIncome.Cents += r.Amount.Cents
	}
	s.Balance.Cents = s.TotalIncome.Cents - s.TotalExpense.Cents

	s.ByCategory = make([]core.CategoryAmount, 0, len(totals))
	for _, name := range order {
		s.ByCategory = append(s.ByCategory, core.CategoryAmount{Name: name, Amount: core.Money{Cents: totals[name]}})
	}
	// Descending by amount; first-seen order breaks ties so repeated runs
	// over identical records yield identical output.
	sort.SliceStable(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Amount.Cents > s.ByCategory[j].Amount.Cents
	})

	return s
}

// RenderText renders the chat reply for a monthly summary. The dashboard
// note is appended only when the dashboard write actually happened.
func RenderText(s core.MonthlySummary, dashboardUpdated bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Resumen de %s\n\n", s.Month)
	fmt.Fprintf(&b, "💰 Total gastado: %s\n", s.TotalExpense.Format())
	fmt.Fprintf(&b, "💵 Total ingresos: %s\n", s.TotalIncome.Format())
	fmt.Fprintf(&b, "📈 Balance: %s\n", s.Balance.Format())

	if len(s.ByCategory) > 0 {
		b.WriteString("\n📋 Por categoría:\n")
		for _, c := range s.ByCategory {
			fmt.Fprintf(&b, "• %s: %s (%.1f%%)\n", titleCase(c.Name), c.Amount.Format(), s.Percentage(c.Amount))
		}
	}

	if dashboardUpdated {
		b.WriteString("\n📊 Dashboard actualizado!")
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
