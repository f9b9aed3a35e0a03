package export

import (
	"context"
	"fmt"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finboard/internal/core"
)

// SheetExporter appends expense rows to a Google Sheet. One row per expense,
// appended in export order.
type SheetExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetExporter builds a Sheets client from service account credentials
// JSON.
func NewSheetExporter(ctx context.Context, credentialsJSON, spreadsheetID, sheetName string) (*SheetExporter, error) {
	if strings.TrimSpace(credentialsJSON) == "" {
		return nil, fmt.Errorf("missing service account credentials")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("missing spreadsheet id")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON([]byte(credentialsJSON)),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetExporter{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// Append writes the expenses as rows after the sheet's last row.
func (e *SheetExporter) Append(ctx context.Context, expenses []core.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	values := make([][]any, 0, len(expenses))
	for _, exp := range expenses {
		values = append(values, expenseRow(exp))
	}

	rangeRef := fmt.Sprintf("%s!A:G", e.sheetName)
	_, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rangeRef, &gsheet.ValueRange{
		Values: values,
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append expense rows: %w", err)
	}
	return nil
}

func expenseRow(e core.Expense) []any {
	return []any{
		e.Date.Format("2006-01-02"),
		e.Amount,
		e.Note,
		e.CategoryID,
		e.PaymentMethod,
		strings.Join(e.Tags, ","),
		e.ID,
	}
}
