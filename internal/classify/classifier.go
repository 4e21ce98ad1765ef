// Package classify assigns categories to expenses and sources to income by
// keyword membership. The tables are immutable configuration values built
// once at startup and passed explicitly into each call.
package classify

import "strings"

// Category is one entry of the ordered keyword table. The match order is the
// declaration order; the first category containing a matching keyword wins.
type Category struct {
	Name     string
	Keywords []string
}

// Table is an ordered category keyword table. The catch-all entry has an
// empty keyword set and must be declared last.
type Table []Category

// CatchAll is the fallback label for both expenses and income.
const CatchAll = "otros"

// DefaultCategories returns the fixed expense category table.
func DefaultCategories() Table {
	return Table{
		{Name: "comida", Keywords: []string{"restaurante", "comida", "cena", "almuerzo", "desayuno", "pizza", "burger", "café", "bar"}},
		{Name: "transporte", Keywords: []string{"uber", "taxi", "metro", "bus", "gasolina", "combustible", "parking"}},
		{Name: "entretenimiento", Keywords: []string{"cine", "teatro", "concierto", "juego", "netflix", "spotify"}},
		{Name: "compras", Keywords: []string{"tienda", "ropa", "zapatos", "amazon", "mercado", "supermercado"}},
		{Name: "servicios", Keywords: []string{"luz", "agua", "gas", "internet", "teléfono", "streaming"}},
		{Name: "salud", Keywords: []string{"doctor", "farmacia", "medicina", "hospital", "dentista"}},
		{Name: "educación", Keywords: []string{"curso", "libro", "universidad", "academia"}},
		{Name: CatchAll},
	}
}

// DefaultSources returns the fixed income source list. Each source matches
// on its own name occurring in the description.
func DefaultSources() []string {
	return []string{"salario", "freelance", "venta", "bono", "intereses", "regalo", CatchAll}
}

// Labels returns the category names in declaration order.
func (t Table) Labels() []string {
	out := make([]string, len(t))
	for i, c := range t {
		out[i] = c.Name
	}
	return out
}

// Contains reports whether name is one of the table's category names.
func (t Table) Contains(name string) bool {
	for _, c := range t {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Expense returns the first category whose keyword set contains a keyword
// occurring as a case-insensitive substring of the description. No scoring:
// declaration order is the tie-break. Falls back to the catch-all.
func Expense(description string, table Table) string {
	lower := strings.ToLower(description)
	for _, cat := range table {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				return cat.Name
			}
		}
	}
	return CatchAll
}

// Source suggests an income source: the first source whose name occurs in
// the description, or the catch-all.
func Source(description string, sources []string) string {
	lower := strings.ToLower(description)
	for _, src := range sources {
		if strings.Contains(lower, src) {
			return src
		}
	}
	return CatchAll
}
