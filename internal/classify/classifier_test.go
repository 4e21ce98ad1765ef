package classify

import "testing"

func TestExpense(t *testing.T) {
	table := DefaultCategories()
	cases := []struct {
		desc string
		want string
	}{
		{"almuerzo con Juan", "comida"},
		{"uber al trabajo", "transporte"},
		{"entradas cine", "entretenimiento"},
		{"ropa nueva", "compras"},
		{"factura de internet", "servicios"},
		{"farmacia", "salud"},
		{"libro de go", "educación"},
		{"algo raro", "otros"},
		{"", "otros"},
		{"CENA CON AMIGOS", "comida"}, // case-insensitive
	}
	for _, tc := range cases {
		if got := Expense(tc.desc, table); got != tc.want {
			t.Errorf("Expense(%q) = %q, want %q", tc.desc, got, tc.want)
		}
	}
}

func TestExpenseFirstDeclaredWins(t *testing.T) {
	// Both a comida keyword and a transporte keyword occur; comida is
	// declared first in the table, so it wins without scoring.
	if got := Expense("café y uber", DefaultCategories()); got != "comida" {
		t.Fatalf("Expense(café y uber) = %q, want comida", got)
	}
}

func TestSource(t *testing.T) {
	sources := DefaultSources()
	cases := []struct {
		desc string
		want string
	}{
		{"salario mensual", "salario"},
		{"trabajo freelance", "freelance"},
		{"venta de bici", "venta"},
		{"sin pista", "otros"},
	}
	for _, tc := range cases {
		if got := Source(tc.desc, sources); got != tc.want {
			t.Errorf("Source(%q) = %q, want %q", tc.desc, got, tc.want)
		}
	}
}

func TestTableHelpers(t *testing.T) {
	table := DefaultCategories()
	labels := table.Labels()
	if len(labels) != 8 {
		t.Fatalf("got %d labels, want 8", len(labels))
	}
	if labels[len(labels)-1] != CatchAll {
		t.Errorf("catch-all must be declared last, got %q", labels[len(labels)-1])
	}
	if !table.Contains("comida") || table.Contains("bogus") {
		t.Error("Contains misbehaves")
	}
}
