// Package mirror replicates customer records into a Google Sheets
// spreadsheet so the collections team can work from a shared sheet.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"cobranca/internal/core"
	applog "cobranca/internal/log"
)

// CustomerMirror replicates one customer record to an external surface.
type CustomerMirror interface {
	MirrorCustomer(ctx context.Context, customer core.Customer) error
}

// GoogleSheets mirrors customers into one sheet, one row per customer,
// keyed by the id in column A.
type GoogleSheets struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewGoogleSheets builds the mirror using Service Account credentials from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewGoogleSheets(ctx context.Context, spreadsheetID, sheetName string) (*GoogleSheets, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	if sheetName == "" {
		return nil, errors.New("sheet name is required")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, err
	}

	return &GoogleSheets{
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
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// MirrorCustomer upserts the customer row. Row 1 is reserved for headers,
// so ids live in A2 and below.
func (g *GoogleSheets) MirrorCustomer(ctx context.Context, customer core.Customer) error {
	if g.svc == nil {
		return errors.New("sheets service not initialized")
	}

	idRange := fmt.Sprintf("%s!A2:A", g.sheetName)
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, idRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read id column of sheet %s: %w", g.sheetName, err)
	}

	row := customerRow(customer)

	for i, cells := range resp.Values {
		if len(cells) == 0 {
			continue
		}
		if id, ok := cells[0].(string); ok && id == customer.ID {
			// Ids start at row 2.
			rowNum := i + 2
			updateRange := fmt.Sprintf("%s!A%d:F%d", g.sheetName, rowNum, rowNum)
			_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, updateRange, row).
				ValueInputOption("USER_ENTERED").Context(ctx).Do()
			if err != nil {
				return fmt.Errorf("update row %d of sheet %s: %w", rowNum, g.sheetName, err)
			}
			slog.InfoContext(ctx, "Mirrored customer to existing row",
				applog.FieldCustomerID, customer.ID, "row", rowNum,
				applog.FieldSpreadsheet, g.spreadsheetID)
			return nil
		}
	}

	appendRange := fmt.Sprintf("%s!A:F", g.sheetName)
	_, err = g.svc.Spreadsheets.Values.Append(g.spreadsheetID, appendRange, row).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", g.sheetName, err)
	}

	slog.InfoContext(ctx, "Mirrored customer to new row",
		applog.FieldCustomerID, customer.ID, applog.FieldSpreadsheet, g.spreadsheetID)
	return nil
}

func customerRow(c core.Customer) *gsheet.ValueRange {
	return &gsheet.ValueRange{
		Values: [][]any{{
			c.ID,
			c.Name,
			c.Phone,
			c.Email,
			c.TotalDebt.Reais(),
			c.CreatedAt.Format("2006-01-02 15:04:05"),
		}},
	}
}
