// Package google adapts the store ports to the Google Sheets API. One
// spreadsheet carries three sheets: expenses, income and a dashboard
// addressed by fixed cell coordinates.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gastos/internal/core"
	ports "gastos/internal/store"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	expensesSheet string
	incomeSheet   string
	dashboard     string

	mu       sync.Mutex
	sheetIDs map[string]int64
}

var (
	_ ports.RecordAppender  = (*Client)(nil)
	_ ports.RecordReader    = (*Client)(nil)
	_ ports.DashboardWriter = (*Client)(nil)
)

// Balance cell colors: soft green when the month is in the black, soft red
// otherwise.
var (
	balancePositiveColor = &gsheet.Color{Red: 0.8, Green: 0.9, Blue: 0.8}
	balanceNegativeColor = &gsheet.Color{Red: 1.0, Green: 0.8, Blue: 0.8}
)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials
// (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS). Sheet names default to Gastos,
// Ingresos and Dashboard.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		expensesSheet: envOr("EXPENSES_SHEET_NAME", "Gastos"),
		incomeSheet:   envOr("INCOME_SHEET_NAME", "Ingresos"),
		dashboard:     envOr("DASHBOARD_SHEET_NAME", "Dashboard"),
		sheetIDs:      map[string]int64{},
	}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// newSheetsService initializes a Sheets service using service account
// credentials, inline JSON taking precedence over a file path.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case inline != "":
		credentialsJSON = []byte(inline)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

func (c *Client) sheetFor(kind core.Kind) string {
	if kind == core.Income {
		return c.incomeSheet
	}
	return c.expensesSheet
}

// Append appends one record row to the sheet for its kind.
func (c *Client) Append(ctx context.Context, r core.StoredRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	sheet := c.sheetFor(r.Kind)
	rng := fmt.Sprintf("%s!A:H", sheet)
	vr := &gsheet.ValueRange{Values: [][]any{r.Row()}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", sheet, err)
	}

	ref := rng
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	slog.InfoContext(ctx, "Record appended to sheet",
		"sheet", sheet, "kind", r.Kind, "range", ref)
	return ref, nil
}

// ReadAll reads every record of one kind. The first row supplies the header
// labels; rows that do not parse are skipped.
func (c *Client) ReadAll(ctx context.Context, kind core.Kind) ([]core.StoredRecord, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	sheet := c.sheetFor(kind)
	rng := fmt.Sprintf("%s!A:H", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return parseRecords(resp.Values, kind), nil
}

// WriteDashboard overwrites the fixed dashboard cell set and applies the
// balance color directive.
func (c *Client) WriteDashboard(ctx context.Context, cells []core.CellUpdate, balanceNonNegative bool) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	data := make([]*gsheet.ValueRange, 0, len(cells))
	for _, cu := range cells {
		data = append(data, &gsheet.ValueRange{
			Range:  fmt.Sprintf("%s!%s", c.dashboard, cu.Cell),
			Values: [][]any{{cu.Value}},
		})
	}
	_, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update dashboard: %w", err)
	}

	if err := c.colorBalanceCells(ctx, balanceNonNegative); err != nil {
		return fmt.Errorf("color balance cells: %w", err)
	}
	return nil
}

func (c *Client) colorBalanceCells(ctx context.Context, nonNegative bool) error {
	sheetID, err := c.sheetID(ctx, c.dashboard)
	if err != nil {
		return err
	}
	color := balanceNegativeColor
	if nonNegative {
		color = balancePositiveColor
	}

	requests := make([]*gsheet.Request, 0, len(balanceCells))
	for _, cell := range balanceCells {
		col, row, err := parseA1(cell)
		if err != nil {
			return err
		}
		requests = append(requests, &gsheet.Request{
			RepeatCell: &gsheet.RepeatCellRequest{
				Range: &gsheet.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(row),
					EndRowIndex:      int64(row + 1),
					StartColumnIndex: int64(col),
					EndColumnIndex:   int64(col + 1),
				},
				Cell: &gsheet.CellData{
					UserEnteredFormat: &gsheet.CellFormat{BackgroundColor: color},
				},
				Fields: "userEnteredFormat.backgroundColor",
			},
		})
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("repeat cell requests: %w", err)
	}
	return nil
}

// balanceCells mirrors the aggregator's two balance locations.
var balanceCells = []string{"B7", "E6"}

// sheetID resolves and caches the numeric sheet ID for a sheet title.
func (c *Client) sheetID(ctx context.Context, title string) (int64, error) {
	c.mu.Lock()
	if id, ok := c.sheetIDs[title]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			c.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	id, ok := c.sheetIDs[title]
	if !ok {
		return 0, fmt.Errorf("sheet %q not found in spreadsheet", title)
	}
	return id, nil
}
