// Package selection implements the two-step confirmation flow: a parsed
// transaction produces a suggestion prompt, and the user's choice event
// commits the record. No state is held between the two steps beyond the
// token carried by the interactive control itself.
package selection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gastos/internal/classify"
	"gastos/internal/core"
	"gastos/internal/store"
)

type (
	// Option is one mutually exclusive choice offered to the user.
	Option struct {
		Label   string
		Payload string
	}

	// Prompt is the suggestion presented between parse and commit.
	Prompt struct {
		Text    string
		Options []Option
	}

	// Flow drives suggestion and confirmation. The taxonomy tables are
	// fixed at construction; Now is injectable for tests.
	Flow struct {
		Categories classify.Table
		Sources    []string
		Appender   store.RecordAppender
		Now        func() time.Time
	}
)

func NewFlow(categories classify.Table, sources []string, appender store.RecordAppender) *Flow {
	return &Flow{
		Categories: categories,
		Sources:    sources,
		Appender:   appender,
		Now:        time.Now,
	}
}

// Suggest computes the suggested label for a parsed transaction and builds
// the confirmation prompt: the full label set as options, the suggested one
// visually marked. Always succeeds for a valid transaction.
func (f *Flow) Suggest(tx core.Transaction) Prompt {
	var labels []string
	var suggested string
	if tx.Kind == core.Income {
		labels = f.Sources
		suggested = classify.Source(tx.Description, f.Sources)
	} else {
		labels = f.Categories.Labels()
		suggested = classify.Expense(tx.Description, f.Categories)
	}

	options := make([]Option, 0, len(labels))
	for _, label := range labels {
		text := title(label)
		if label == suggested {
			text = "✅ " + text
		}
		options = append(options, Option{
			Label: text,
			Payload: Encode(Pending{
				Kind:        tx.Kind,
				Label:       label,
				Amount:      tx.Amount,
				Description: tx.Description,
			}),
		})
	}

	return Prompt{
		Text:    suggestText(tx, suggested),
		Options: options,
	}
}

// Confirm handles the choice event: it validates the token against the
// enumerated label set for its kind and appends the record. On any failure
// no row is written and the user must resend the original message.
func (f *Flow) Confirm(ctx context.Context, user, token string) (core.StoredRecord, error) {
	p, err := Decode(token)
	if err != nil {
		return core.StoredRecord{}, err
	}

	// Defensive: the UI only offers valid labels, but the token round-trips
	// through the outside world.
	if p.Kind == core.Income {
		if !contains(f.Sources, p.Label) {
			return core.StoredRecord{}, fmt.Errorf("%w: unknown source %q", core.ErrInvalidChoice, p.Label)
		}
	} else if !f.Categories.Contains(p.Label) {
		return core.StoredRecord{}, fmt.Errorf("%w: unknown category %q", core.ErrInvalidChoice, p.Label)
	}

	rec := core.NewStoredRecord(p.Kind, p.Label, p.Description, user, p.Amount, f.Now())
	ref, err := f.Appender.Append(ctx, rec)
	if err != nil {
		return core.StoredRecord{}, fmt.Errorf("append record: %w", err)
	}

	slog.InfoContext(ctx, "Record committed",
		"kind", rec.Kind,
		"label", rec.Label,
		"amount_cents", rec.Amount.Cents,
		"user", user,
		"row_ref", ref)

	return rec, nil
}

func suggestText(tx core.Transaction, suggested string) string {
	if tx.Kind == core.Income {
		return fmt.Sprintf("💵 Ingreso registrado: %s\n📝 Descripción: %s\n🏷️ Fuente sugerida: %s\n\n¿Confirmar fuente o elegir otra?",
			tx.Amount.Format(), tx.Description, title(suggested))
	}
	return fmt.Sprintf("💰 Gasto registrado: %s\n📝 Descripción: %s\n🏷️ Categoría sugerida: %s\n\n¿Confirmar categoría o elegir otra?",
		tx.Amount.Format(), tx.Description, title(suggested))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// title upper-cases the first rune only; labels are plain lowercase Spanish
// words, so no full Unicode title-casing is needed.
func title(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
