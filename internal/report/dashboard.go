package report

import (
	"strconv"

	"gastos/internal/core"
)

// Dashboard cell layout. The monthly summary panel lives in column B, the
// income-versus-expense panel mirrors the same figures in column E, and the
// per-category column starts at H4. The set is fixed: every call overwrites
// the same cells, including zero-valued categories.
const (
	cellMonth        = "B4"
	cellPanelExpense = "B5"
	cellPanelIncome  = "B6"
	cellPanelBalance = "B7"

	cellVsIncome  = "E4"
	cellVsExpense = "E5"
	cellVsBalance = "E6"

	categoryColumn   = "H"
	categoryFirstRow = 4
)

// BalanceCells are the two mirrored balance locations that receive the
// color directive (green when non-negative, red otherwise).
var BalanceCells = []string{cellPanelBalance, cellVsBalance}

// categoryRows is the fixed dashboard row order; it intentionally matches
// the classifier table declaration order.
var categoryRows = []string{
	"comida", "transporte", "entretenimiento", "compras",
	"servicios", "salud", "educación", "otros",
}

// RenderDashboard maps a monthly summary onto the fixed dashboard cell set.
// It is a pure function of the summary.
func RenderDashboard(s core.MonthlySummary) []core.CellUpdate {
	totals := map[string]int64{}
	for _, c := range s.ByCategory {
		totals[c.Name] = c.Amount.Cents
	}

	cells := []core.CellUpdate{
		{Cell: cellMonth, Value: s.Month},
		{Cell: cellPanelExpense, Value: s.TotalExpense.Format()},
		{Cell: cellPanelIncome, Value: s.TotalIncome.Format()},
		{Cell: cellPanelBalance, Value: s.Balance.Format()},
		{Cell: cellVsIncome, Value: s.TotalIncome.Format()},
		{Cell: cellVsExpense, Value: s.TotalExpense.Format()},
		{Cell: cellVsBalance, Value: s.Balance.Format()},
	}
	for i, name := range categoryRows {
		amount := core.Money{Cents: totals[name]}
		cells = append(cells, core.CellUpdate{
			Cell:  categoryColumn + strconv.Itoa(categoryFirstRow+i),
			Value: amount.Format(),
		})
	}
	return cells
}
