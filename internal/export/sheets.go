package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"moneytracker/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsTarget appends exported transactions to a Google Sheets spreadsheet
// using Service Account credentials.
type SheetsTarget struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ Target = (*SheetsTarget)(nil)

// NewSheetsTarget creates a Sheets export target. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsTarget(ctx context.Context, spreadsheetID, sheetName string) (*SheetsTarget, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if sheetName == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsTarget{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

func (t *SheetsTarget) Export(ctx context.Context, tx core.Transaction) error {
	if t.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	rng := fmt.Sprintf("%s!A:E", t.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{sheetRow(tx)}}

	_, err := t.svc.Spreadsheets.Values.Append(t.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", t.sheetName, err)
	}

	return nil
}

// sheetRow renders a transaction as a spreadsheet row: date, title, category,
// expense dollars, income dollars. Signed cents split into the two amount
// columns the same way the ledger CSV does.
func sheetRow(tx core.Transaction) []any {
	var expense, income float64
	dollars := tx.Amount.Abs().Dollars()
	if tx.Amount.Cents < 0 {
		expense = dollars
	} else {
		income = dollars
	}
	return []any{
		tx.Date.Format("01/02/2006"),
		tx.Title,
		tx.Category,
		expense,
		income,
	}
}
