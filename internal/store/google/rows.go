package google

import (
	"fmt"
	"strings"

	"gastos/internal/core"
)

// Header labels as written to the first row of each sheet.
var (
	expenseHeaders = []string{"Fecha", "Descripción", "Cantidad", "Categoría", "Usuario", "Tipo", "Mes", "Año"}
	incomeHeaders  = []string{"Fecha", "Descripción", "Cantidad", "Fuente", "Usuario", "Mes", "Año"}
)

// parseRecords converts a values matrix (as returned by the Sheets API)
// into stored records, keyed by the first-row header labels. Rows without a
// parsable amount or date are skipped; reads are best-effort.
func parseRecords(values [][]any, kind core.Kind) []core.StoredRecord {
	if len(values) < 2 {
		return nil
	}
	headers := toStrings(values[0])

	labelHeader := "Categoría"
	if kind == core.Income {
		labelHeader = "Fuente"
	}
	colDate := indexOf(headers, "Fecha")
	colDesc := indexOf(headers, "Descripción")
	colAmount := indexOf(headers, "Cantidad")
	colLabel := indexOf(headers, labelHeader)
	colUser := indexOf(headers, "Usuario")
	colMonth := indexOf(headers, "Mes")
	colYear := indexOf(headers, "Año")
	if colDate == -1 || colAmount == -1 {
		return nil
	}

	var out []core.StoredRecord
	for _, raw := range values[1:] {
		row := toStrings(raw)
		date := safeGet(row, colDate)
		if date == "" {
			continue
		}
		cents, ok := parseAmountCell(safeGet(row, colAmount))
		if !ok {
			continue
		}
		out = append(out, core.StoredRecord{
			Date:        date,
			Description: safeGet(row, colDesc),
			Amount:      core.Money{Cents: cents},
			Label:       safeGet(row, colLabel),
			User:        safeGet(row, colUser),
			Kind:        kind,
			Month:       safeGet(row, colMonth),
			Year:        safeGet(row, colYear),
		})
	}
	return out
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}

// parseAmountCell accepts cell values as stored by Append (plain numbers)
// or hand-edited ones with a decimal comma or currency suffix.
func parseAmountCell(s string) (int64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "€"))
	if s == "" {
		return 0, false
	}
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return 0, false
	}
	return cents, true
}

// parseA1 converts a single-cell A1 address ("B7") into zero-based column
// and row indexes.
func parseA1(cell string) (col, row int, err error) {
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		col = col*26 + int(cell[i]-'A'+1)
		i++
	}
	if col == 0 || i == len(cell) {
		return 0, 0, fmt.Errorf("invalid cell address %q", cell)
	}
	for ; i < len(cell); i++ {
		if cell[i] < '0' || cell[i] > '9' {
			return 0, 0, fmt.Errorf("invalid cell address %q", cell)
		}
		row = row*10 + int(cell[i]-'0')
	}
	if row == 0 {
		return 0, 0, fmt.Errorf("invalid cell address %q", cell)
	}
	return col - 1, row - 1, nil
}
