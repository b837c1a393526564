// Package export mirrors archived expenses into a Google Sheets
// spreadsheet so the fleet ledger can be shared outside the service.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"frota/internal/amqp"
)

// SheetsExporter appends one row per recorded expense to a single sheet.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter builds an exporter for the given spreadsheet and sheet.
// Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName string) (*SheetsExporter, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetName) == "" {
		sheetName = "Despesas"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// ExportExpense appends the expense as a row: date, vehicle, category,
// description, amount in reais, provider, liters, km, paid.
func (s *SheetsExporter) ExportExpense(ctx context.Context, msg amqp.ExpenseRecordedMessage) error {
	if s.svc == nil {
		return errors.New("sheets service not initialized")
	}

	reais := float64(msg.AmountCents) / 100.0

	// Find the next empty row from the current sheet dimensions.
	rng := fmt.Sprintf("%s!A:A", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get sheet dimensions for %s: %w", s.sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	paid := "não"
	if msg.Paid {
		paid = "sim"
	}

	dataRange := fmt.Sprintf("%s!A%d:I%d", s.sheetName, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{{
		msg.Date,
		msg.VehicleID,
		msg.Category,
		msg.Description,
		reais,
		msg.Provider,
		msg.Liters,
		msg.KmAtTime,
		paid,
	}}}

	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update row in sheet %s: %w", s.sheetName, err)
	}

	return nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
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

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}
