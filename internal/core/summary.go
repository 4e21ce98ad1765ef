package core

// CategoryAmount is an amount aggregated under one category label.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthlySummary is the derived aggregate for one month. It is recomputed
// on every summary request and never stored.
type MonthlySummary struct {
	Month        string // YYYY-MM
	TotalExpense Money
	TotalIncome  Money
	Balance      Money
	// ByCategory holds expense totals sorted by descending amount.
	ByCategory []CategoryAmount
}

// Percentage returns the share of the total expense attributed to amount,
// in percent. Zero when nothing was spent.
func (s MonthlySummary) Percentage(amount Money) float64 {
	if s.TotalExpense.Cents <= 0 {
		return 0
	}
	return float64(amount.Cents) / float64(s.TotalExpense.Cents) * 100
}

// CellUpdate is one dashboard write: a fixed A1-style cell address and the
// text value to place there.
type CellUpdate struct {
	Cell  string
	Value string
}
