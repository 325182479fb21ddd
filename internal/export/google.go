package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/helderruiz/controle-mensal/internal/core"
)

// GoogleSheet writes the ledger into one worksheet of a Google
// spreadsheet, one transaction per row below a header row.
type GoogleSheet struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ SheetWriter = (*GoogleSheet)(nil)

var sheetHeader = []any{"Date", "Description", "Amount", "Type", "Category", "Installments"}

// NewGoogleSheet creates a sheet writer using service account credentials
// from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewGoogleSheet(ctx context.Context, spreadsheetID, sheetName string) (*GoogleSheet, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetName) == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &GoogleSheet{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	credentialsJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	credentialsFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if credentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentials []byte
	switch {
	case credentialsJSON != "":
		credentials = []byte(credentialsJSON)
	case credentialsFile != "":
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentials = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// ReplaceAll clears the worksheet and writes the header plus every record.
// Amounts are written as decimal reais so the sheet can sum them.
func (g *GoogleSheet) ReplaceAll(ctx context.Context, items []core.Transaction) error {
	if g.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:F", g.sheetName)
	if _, err := g.svc.Spreadsheets.Values.Clear(g.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", g.sheetName, err)
	}

	values := make([][]any, 0, len(items)+1)
	values = append(values, sheetHeader)
	for _, t := range items {
		values = append(values, transactionRow(t))
	}

	writeRange := fmt.Sprintf("%s!A1", g.sheetName)
	vr := &gsheet.ValueRange{Values: values}
	if _, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write sheet %s: %w", g.sheetName, err)
	}
	return nil
}

func transactionRow(t core.Transaction) []any {
	installments := ""
	if t.InstallmentsCount > 0 {
		installments = fmt.Sprintf("%d", t.InstallmentsCount)
	}
	amount := t.Amount.Reais()
	if t.Type == core.Exit {
		amount = -amount
	}
	return []any{
		t.Date.String(),
		t.Description,
		amount,
		t.Type.Label(),
		t.Category.Label(),
		installments,
	}
}
