package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"gastos/internal/classify"
	"gastos/internal/core"
	"gastos/internal/selection"
	"gastos/internal/store/memory"
)

func newTestHandler(t *testing.T) (*Handler, *memory.Store) {
	t.Helper()
	st := memory.New()
	flow := selection.NewFlow(classify.DefaultCategories(), classify.DefaultSources(), st)
	now := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	flow.Now = func() time.Time { return now }
	h := NewHandler(flow, st, st)
	h.Now = flow.Now
	return h, st
}

func TestHandleMessageExpensePrompt(t *testing.T) {
	h, _ := newTestHandler(t)

	reply := h.HandleMessage(context.Background(), Message{User: "ana", Text: "café 3.50€"})

	if !strings.Contains(reply.Text, "Gasto registrado: 3.50€") {
		t.Errorf("unexpected prompt text: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "Categoría sugerida: Comida") {
		t.Errorf("expected comida suggestion in %q", reply.Text)
	}
	if len(reply.Options) != 8 {
		t.Fatalf("expected 8 category options, got %d", len(reply.Options))
	}
	if reply.Options[0].Label != "✅ Comida" {
		t.Errorf("expected marked suggestion first, got %q", reply.Options[0].Label)
	}
}

func TestHandleMessageIncomePrompt(t *testing.T) {
	h, _ := newTestHandler(t)

	reply := h.HandleMessage(context.Background(), Message{User: "ana", Text: "ingreso 1500 salario"})

	if !strings.Contains(reply.Text, "Ingreso registrado: 1500.00€") {
		t.Errorf("unexpected prompt text: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "Fuente sugerida: Salario") {
		t.Errorf("expected salario suggestion in %q", reply.Text)
	}
	if len(reply.Options) != 7 {
		t.Fatalf("expected 7 source options, got %d", len(reply.Options))
	}
}

func TestHandleMessageNotRecognized(t *testing.T) {
	h, _ := newTestHandler(t)

	reply := h.HandleMessage(context.Background(), Message{User: "ana", Text: "hola que tal"})

	if !strings.Contains(reply.Text, "No pude entender el mensaje") {
		t.Errorf("expected help reply, got %q", reply.Text)
	}
	if len(reply.Options) != 0 {
		t.Errorf("expected no options, got %d", len(reply.Options))
	}
}

func TestCommands(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	tests := []struct {
		command string
		want    string
	}{
		{"/start", "Comandos disponibles"},
		{"/help", "Formatos para GASTOS"},
		{"/categorias", "Comida: restaurante"},
		{"/desconocido", "No pude entender el mensaje"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			reply := h.HandleMessage(ctx, Message{User: "ana", Text: tt.command})
			if !strings.Contains(reply.Text, tt.want) {
				t.Errorf("reply %q does not contain %q", reply.Text, tt.want)
			}
		})
	}
}

func TestCategoriesListsCatchAll(t *testing.T) {
	h, _ := newTestHandler(t)

	reply := h.HandleMessage(context.Background(), Message{User: "ana", Text: "/categorias"})

	if !strings.Contains(reply.Text, "• Otros\n") {
		t.Errorf("expected bare catch-all entry in %q", reply.Text)
	}
}

func TestHandleChoiceCommitsRecord(t *testing.T) {
	h, st := newTestHandler(t)
	ctx := context.Background()

	prompt := h.HandleMessage(ctx, Message{User: "ana", Text: "café 3.50€"})
	reply := h.HandleChoice(ctx, Choice{User: "ana", Payload: prompt.Options[0].Payload})

	if !strings.Contains(reply.Text, "Gasto guardado exitosamente") {
		t.Fatalf("unexpected confirmation: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "Fecha: 2024-03-05 10:30") {
		t.Errorf("expected stamped date in %q", reply.Text)
	}

	recs, err := st.ReadAll(ctx, core.Expense)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(recs))
	}
	if recs[0].Label != "comida" || recs[0].Amount.Cents != 350 || recs[0].User != "ana" {
		t.Errorf("unexpected stored record: %+v", recs[0])
	}
}

func TestHandleChoiceInvalidPayload(t *testing.T) {
	h, st := newTestHandler(t)

	reply := h.HandleChoice(context.Background(), Choice{User: "ana", Payload: "garbage"})

	if !strings.Contains(reply.Text, "Opción no válida") {
		t.Errorf("expected invalid-choice reply, got %q", reply.Text)
	}
	if recs, _ := st.ReadAll(context.Background(), core.Expense); len(recs) != 0 {
		t.Errorf("expected no stored records, got %d", len(recs))
	}
}

func TestResumenWritesDashboard(t *testing.T) {
	h, st := newTestHandler(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

	if _, err := st.Append(ctx, core.NewStoredRecord(core.Expense, "comida", "almuerzo", "ana", core.Money{Cents: 5000}, now)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := st.Append(ctx, core.NewStoredRecord(core.Income, "salario", "sueldo", "ana", core.Money{Cents: 150000}, now)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	// A record from another month must not count.
	if _, err := st.Append(ctx, core.NewStoredRecord(core.Expense, "comida", "cena", "ana", core.Money{Cents: 9900}, now.AddDate(0, -1, 0))); err != nil {
		t.Fatalf("Append: %v", err)
	}

	reply := h.HandleMessage(ctx, Message{User: "ana", Text: "/resumen"})

	for _, want := range []string{
		"Resumen de 2024-03",
		"Total gastado: 50.00€",
		"Total ingresos: 1500.00€",
		"Balance: 1450.00€",
		"Comida: 50.00€ (100.0%)",
		"Dashboard actualizado!",
	} {
		if !strings.Contains(reply.Text, want) {
			t.Errorf("summary %q does not contain %q", reply.Text, want)
		}
	}

	if st.DashboardWrites() != 1 {
		t.Fatalf("expected 1 dashboard write, got %d", st.DashboardWrites())
	}
	cells, nonNegative := st.Dashboard()
	if !nonNegative {
		t.Error("expected non-negative balance flag")
	}
	if len(cells) != 15 {
		t.Errorf("expected 15 cell updates, got %d", len(cells))
	}
}
