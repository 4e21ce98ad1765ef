// Package parse extracts transactions from free-text chat messages.
//
// Recognition is an ordered list of matchers tried in priority order with
// early exit: income forms first, then expense forms. The first matcher
// that yields a convertible positive amount wins.
package parse

import (
	"regexp"
	"strings"

	"gastos/internal/core"
)

const amountExpr = `(\d+(?:[,.]?\d+)?)`

type matcher struct {
	re   *regexp.Regexp
	kind core.Kind
	// swap allows retrying with the second group as the amount when the
	// first group is not numeric (description-first expense forms reuse
	// the same attempt logic as amount-first ones).
	swap bool
}

// Matchers are anchored at the start of the message, mirroring the original
// prefix-match semantics: trailing text beyond a match is never rejected.
var matchers = []matcher{
	// Income: fixed prefix keyword, amount, optional currency, remainder.
	{re: income(`ingreso`, `€?`), kind: core.Income},
	{re: income(`ingreso`, `pesos?`), kind: core.Income},
	{re: income(`cobré`, `€?`), kind: core.Income},
	{re: income(`cobré`, `pesos?`), kind: core.Income},
	{re: income(`entrada`, `€?`), kind: core.Income},

	// Expense: amount-first, then description-first.
	{re: expense(amountExpr + `\s*€?\s*(.+)`), kind: core.Expense, swap: true},
	{re: expense(amountExpr + `\s*pesos?\s*(.+)`), kind: core.Expense, swap: true},
	{re: expense(amountExpr + `\s*\$\s*(.+)`), kind: core.Expense, swap: true},
	{re: expense(`(.+?)\s*` + amountExpr + `\s*€?`), kind: core.Expense, swap: true},
	{re: expense(`(.+?)\s*` + amountExpr + `\s*pesos?`), kind: core.Expense, swap: true},
}

func income(keyword, currency string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + keyword + `\s+` + amountExpr + `\s*` + currency + `\s*(.+)`)
}

func expense(body string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + body)
}

// Message extracts (amount, description, kind) from a raw chat message.
// Income patterns take precedence: a message matching one is never tested
// against expense patterns. Returns core.ErrNotRecognized when no pattern
// yields a valid positive amount.
func Message(text string) (core.Transaction, error) {
	text = strings.TrimSpace(text)
	for _, m := range matchers {
		groups := m.re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		amount, err := core.ParseMoney(groups[1])
		description := strings.TrimSpace(groups[2])
		if err != nil && m.swap {
			// First group was not numeric; the trailing group may be
			// the amount ("almuerzo 50").
			amount, err = core.ParseMoney(groups[2])
			description = strings.TrimSpace(groups[1])
		}
		if err != nil {
			continue
		}
		return core.Transaction{Amount: amount, Description: description, Kind: m.kind}, nil
	}
	return core.Transaction{}, core.ErrNotRecognized
}
