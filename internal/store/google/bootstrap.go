package google

import (
	"context"
	"fmt"
	"log/slog"

	gsheet "google.golang.org/api/sheets/v4"
)

// dashboardSkeleton is the static label layout written once to an empty
// dashboard sheet. The aggregator later fills the value cells next to these
// labels on every summary request.
var dashboardSkeleton = [][]any{
	{"📊 CONTROL DE GASTOS - DASHBOARD"},
	{},
	{"💰 RESUMEN MENSUAL", "", "", "📈 INGRESOS VS GASTOS", "", "", "🏷️ POR CATEGORÍA"},
	{"Mes:", "", "", "Ingresos:", "", "", "Comida:"},
	{"Total Gastos:", "", "", "Gastos:", "", "", "Transporte:"},
	{"Total Ingresos:", "", "", "Diferencia:", "", "", "Entretenimiento:"},
	{"Balance:", "", "", "", "", "", "Compras:"},
	{"", "", "", "", "", "", "Servicios:"},
	{"", "", "", "", "", "", "Salud:"},
	{"", "", "", "", "", "", "Educación:"},
	{"", "", "", "", "", "", "Otros:"},
}

// EnsureSheets creates the expense, income and dashboard sheets when they
// are missing and writes their header rows or skeleton when empty. Safe to
// run on every startup.
func (c *Client) EnsureSheets(ctx context.Context) error {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	existing := map[string]bool{}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			existing[sh.Properties.Title] = true
		}
	}

	var requests []*gsheet.Request
	for _, title := range []string{c.expensesSheet, c.incomeSheet, c.dashboard} {
		if existing[title] {
			continue
		}
		requests = append(requests, &gsheet.Request{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: title},
			},
		})
	}
	if len(requests) > 0 {
		_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
			Requests: requests,
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("add missing sheets: %w", err)
		}
		slog.InfoContext(ctx, "Created missing sheets", "count", len(requests))
	}

	if err := c.ensureHeader(ctx, c.expensesSheet, expenseHeaders); err != nil {
		return err
	}
	if err := c.ensureHeader(ctx, c.incomeSheet, incomeHeaders); err != nil {
		return err
	}
	return c.ensureDashboardSkeleton(ctx)
}

func (c *Client) ensureHeader(ctx context.Context, sheet string, headers []string) error {
	rng := fmt.Sprintf("%s!1:1", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", sheet, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &gsheet.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header of %s: %w", sheet, err)
	}
	slog.InfoContext(ctx, "Wrote sheet header", "sheet", sheet)
	return nil
}

func (c *Client) ensureDashboardSkeleton(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A1", c.dashboard)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read dashboard: %w", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	writeRange := fmt.Sprintf("%s!A1:G%d", c.dashboard, len(dashboardSkeleton))
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, &gsheet.ValueRange{Values: dashboardSkeleton}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write dashboard skeleton: %w", err)
	}
	slog.InfoContext(ctx, "Wrote dashboard skeleton", "sheet", c.dashboard)
	return nil
}
