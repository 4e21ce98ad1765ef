package bot

import (
	"fmt"
	"strings"

	"gastos/internal/classify"
	"gastos/internal/core"
)

const startText = `¡Hola! 👋 Soy tu bot de control de gastos e ingresos.

📝 Cómo usarme:
• Gastos: "50 almuerzo", "café 3.50€", "20 pesos uber"
• Ingresos: "ingreso 1500 salario", "cobré 500 freelance"
• Te ayudo a categorizarlos automáticamente
• Todo se guarda en tu spreadsheet con formato visual

🔧 Comandos disponibles:
/start - Ver este mensaje
/categorias - Ver categorías disponibles
/resumen - Resumen del mes actual (actualiza dashboard)
/help - Ayuda detallada

📊 Dashboard visual con balance mensual y análisis por categoría

¡Empezá a enviar tus gastos e ingresos! 💰💵`

const helpText = `🤖 Ayuda - Bot de Control de Gastos

💰 Formatos para GASTOS:
• "50 almuerzo con Juan"
• "café 3.50€"
• "20 pesos uber al trabajo"
• "compras supermercado 85"

💵 Formatos para INGRESOS:
• "ingreso 1500 salario"
• "cobré 500 freelance"
• "entrada 200 venta algo"

🏷️ Categorización automática:
• El bot sugiere categorías y fuentes automáticamente
• Podés elegir manualmente la correcta

📊 Seguimiento visual:
• Spreadsheet con 3 hojas: Gastos, Ingresos, Dashboard
• Dashboard actualizado automáticamente
• Resúmenes mensuales con balance

🔧 Comandos:
/start - Mensaje de bienvenida
/categorias - Ver categorías disponibles
/resumen - Resumen completo del mes (actualiza dashboard)
/help - Esta ayuda`

const notRecognizedText = "No pude entender el mensaje. Intentá con:\n" +
	"• Gastos: '50 almuerzo' o 'café 3.50€'\n" +
	"• Ingresos: 'ingreso 1500 salario' o 'cobré 500 freelance'"

const invalidChoiceText = "Opción no válida. Enviá el gasto o ingreso nuevamente."

const saveFailedText = "Error guardando el registro. Intentá nuevamente."

// categoriesText lists every expense category with a sample of its keywords.
// The catch-all has no keywords and is listed bare.
func categoriesText(table classify.Table) string {
	var b strings.Builder
	b.WriteString("📋 Categorías disponibles:\n\n")
	for _, c := range table {
		if len(c.Keywords) == 0 {
			fmt.Fprintf(&b, "• %s\n", title(c.Name))
			continue
		}
		sample := c.Keywords
		if len(sample) > 5 {
			sample = sample[:5]
		}
		fmt.Fprintf(&b, "• %s: %s\n", title(c.Name), strings.Join(sample, ", "))
	}
	return b.String()
}

func savedText(rec core.StoredRecord) string {
	if rec.Kind == core.Income {
		return fmt.Sprintf("✅ Ingreso guardado exitosamente\n\n💵 Cantidad: %s\n📝 Descripción: %s\n🏷️ Fuente: %s\n📅 Fecha: %s",
			rec.Amount.Format(), rec.Description, title(rec.Label), rec.Date)
	}
	return fmt.Sprintf("✅ Gasto guardado exitosamente\n\n💰 Cantidad: %s\n📝 Descripción: %s\n🏷️ Categoría: %s\n📅 Fecha: %s",
		rec.Amount.Format(), rec.Description, title(rec.Label), rec.Date)
}

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
