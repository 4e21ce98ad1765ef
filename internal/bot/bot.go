// Package bot orchestrates the chat conversation: it routes inbound text to
// commands or the transaction parser, drives the two-step confirmation flow,
// and produces the monthly summary. It speaks through gateway-neutral
// Message/Choice/Reply values so any chat transport can sit in front of it.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gastos/internal/classify"
	"gastos/internal/core"
	"gastos/internal/parse"
	"gastos/internal/report"
	"gastos/internal/selection"
	"gastos/internal/store"
)

type (
	// Message is an inbound free-text chat message.
	Message struct {
		User string
		Text string
	}

	// Choice is the user tapping one of the options a prior Reply offered.
	// Payload is the opaque token carried by that option.
	Choice struct {
		User    string
		Payload string
	}

	// Reply is what the bot sends back. Options is non-empty only when the
	// reply asks the user to pick a label.
	Reply struct {
		Text    string
		Options []selection.Option
	}
)

// Handler wires the parser, classifier, selection flow and reporting
// together behind the chat surface. Now is injectable for tests.
type Handler struct {
	flow       *selection.Flow
	reader     store.RecordReader
	dashboard  store.DashboardWriter
	categories classify.Table
	Now        func() time.Time
}

func NewHandler(flow *selection.Flow, reader store.RecordReader, dashboard store.DashboardWriter) *Handler {
	return &Handler{
		flow:       flow,
		reader:     reader,
		dashboard:  dashboard,
		categories: flow.Categories,
		Now:        time.Now,
	}
}

// HandleMessage routes one inbound message. Slash commands are answered
// directly; anything else goes through the transaction parser and, when
// recognized, comes back as a label-selection prompt.
func (h *Handler) HandleMessage(ctx context.Context, msg Message) Reply {
	text := strings.TrimSpace(msg.Text)

	if strings.HasPrefix(text, "/") {
		return h.handleCommand(ctx, text)
	}

	tx, err := parse.Message(text)
	if err != nil {
		slog.InfoContext(ctx, "Message not recognized", "user", msg.User)
		return Reply{Text: notRecognizedText}
	}

	p := h.flow.Suggest(tx)
	return Reply{Text: p.Text, Options: p.Options}
}

// HandleChoice commits the record the choice token describes and confirms it
// back to the user. Invalid tokens and store failures both leave no row
// behind; the user is asked to retry.
func (h *Handler) HandleChoice(ctx context.Context, c Choice) Reply {
	rec, err := h.flow.Confirm(ctx, c.User, c.Payload)
	if err != nil {
		if errors.Is(err, core.ErrInvalidChoice) {
			slog.WarnContext(ctx, "Invalid choice payload", "user", c.User, "error", err)
			return Reply{Text: invalidChoiceText}
		}
		slog.ErrorContext(ctx, "Record save failed", "user", c.User, "error", err)
		return Reply{Text: saveFailedText}
	}
	return Reply{Text: savedText(rec)}
}

func (h *Handler) handleCommand(ctx context.Context, text string) Reply {
	cmd := text
	if i := strings.IndexAny(cmd, " \t"); i >= 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case "/start":
		return Reply{Text: startText}
	case "/help":
		return Reply{Text: helpText}
	case "/categorias":
		return Reply{Text: categoriesText(h.categories)}
	case "/resumen":
		return h.summarize(ctx)
	default:
		return Reply{Text: notRecognizedText}
	}
}

// summarize builds the current-month summary and refreshes the dashboard.
// A failed read of either sheet degrades to an empty record set rather than
// aborting; a failed dashboard write drops the "updated" note from the reply.
func (h *Handler) summarize(ctx context.Context) Reply {
	month := h.Now().Format(core.MonthLayout)

	expenses, err := h.reader.ReadAll(ctx, core.Expense)
	if err != nil {
		slog.ErrorContext(ctx, "Expense read failed", "month", month, "error", err)
		expenses = nil
	}
	incomes, err := h.reader.ReadAll(ctx, core.Income)
	if err != nil {
		slog.ErrorContext(ctx, "Income read failed", "month", month, "error", err)
		incomes = nil
	}

	s := report.Summarize(month, expenses, incomes)

	dashboardUpdated := false
	if h.dashboard != nil {
		cells := report.RenderDashboard(s)
		if err := h.dashboard.WriteDashboard(ctx, cells, s.Balance.Cents >= 0); err != nil {
			slog.ErrorContext(ctx, "Dashboard write failed", "month", month, "error", err)
		} else {
			dashboardUpdated = true
		}
	}

	return Reply{Text: report.RenderText(s, dashboardUpdated)}
}
