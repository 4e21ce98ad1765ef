package google

import (
	"testing"

	"gastos/internal/core"
)

func TestParseRecordsExpenses(t *testing.T) {
	values := [][]any{
		{"Fecha", "Descripción", "Cantidad", "Categoría", "Usuario", "Tipo", "Mes", "Año"},
		{"2024-05-01 10:00", "almuerzo", 50, "comida", "juan", "Gasto", "2024-05", "2024"},
		{"2024-05-02 11:00", "uber", "30.50", "transporte", "ana", "Gasto", "2024-05", "2024"},
		{"", "fila vacía", "", "", "", "", "", ""},
		{"2024-05-03 09:00", "sin importe", "n/a", "otros", "ana", "Gasto", "2024-05", "2024"},
	}

	recs := parseRecords(values, core.Expense)

	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2 (blank and malformed rows skipped)", len(recs))
	}
	if recs[0].Amount.Cents != 5000 || recs[0].Label != "comida" {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[1].Amount.Cents != 3050 || recs[1].User != "ana" {
		t.Errorf("second record = %+v", recs[1])
	}
}

func TestParseRecordsIncome(t *testing.T) {
	values := [][]any{
		{"Fecha", "Descripción", "Cantidad", "Fuente", "Usuario", "Mes", "Año"},
		{"2024-05-01 09:00", "salario mayo", "1500,00", "salario", "juan", "2024-05", "2024"},
	}

	recs := parseRecords(values, core.Income)

	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].Amount.Cents != 150000 || recs[0].Label != "salario" || recs[0].Kind != core.Income {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestParseRecordsEmptyOrHeaderOnly(t *testing.T) {
	if got := parseRecords(nil, core.Expense); got != nil {
		t.Errorf("nil values: %+v", got)
	}
	headerOnly := [][]any{{"Fecha", "Descripción", "Cantidad", "Categoría"}}
	if got := parseRecords(headerOnly, core.Expense); got != nil {
		t.Errorf("header only: %+v", got)
	}
}

func TestParseAmountCell(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"50", 5000, true},
		{"30.50", 3050, true},
		{"1500,00", 150000, true},
		{"12.50€", 1250, true},
		{"n/a", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseAmountCell(tc.in)
		if ok != tc.ok || got != tc.cents {
			t.Errorf("parseAmountCell(%q) = %d,%v want %d,%v", tc.in, got, ok, tc.cents, tc.ok)
		}
	}
}

func TestParseA1(t *testing.T) {
	cases := []struct {
		cell string
		col  int
		row  int
		ok   bool
	}{
		{"A1", 0, 0, true},
		{"B7", 1, 6, true},
		{"E6", 4, 5, true},
		{"H11", 7, 10, true},
		{"AA3", 26, 2, true},
		{"7B", 0, 0, false},
		{"B", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		col, row, err := parseA1(tc.cell)
		if tc.ok {
			if err != nil || col != tc.col || row != tc.row {
				t.Errorf("parseA1(%q) = %d,%d,%v want %d,%d", tc.cell, col, row, err, tc.col, tc.row)
			}
		} else if err == nil {
			t.Errorf("parseA1(%q) expected error", tc.cell)
		}
	}
}
