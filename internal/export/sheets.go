package export

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// SheetsExporter appends a new worksheet with the report's findings to an
// existing Google spreadsheet, using service account credentials.
type SheetsExporter struct {
	credentialsFile string
	spreadsheetID   string
}

// NewSheetsExporter creates an exporter for the given service account
// credentials file and spreadsheet ID.
func NewSheetsExporter(credentialsFile, spreadsheetID string) *SheetsExporter {
	return &SheetsExporter{
		credentialsFile: credentialsFile,
		spreadsheetID:   spreadsheetID,
	}
}

// Name identifies the destination.
func (s *SheetsExporter) Name() string { return "sheets" }

// Export adds a worksheet named after the report ID and writes a header row
// plus one row per finding. Sheet titles embed the report ID and timestamp,
// so exporting twice produces two worksheets.
func (s *SheetsExporter) Export(ctx context.Context, report *types.AuditReport) error {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(s.credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return &Error{Service: "sheets", Message: "failed to create Sheets client", Cause: err}
	}

	title := fmt.Sprintf("Audit %s %s", report.ID.String()[:8], report.CreatedAt.Format("2006-01-02 15:04:05"))

	addSheet := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := svc.Spreadsheets.BatchUpdate(s.spreadsheetID, addSheet).Context(ctx).Do(); err != nil {
		return &Error{Service: "sheets", Message: "failed to add worksheet", Cause: err}
	}

	values := SheetValues(report)
	vr := &sheets.ValueRange{Values: values}
	rangeRef := fmt.Sprintf("'%s'!A1", title)
	if _, err := svc.Spreadsheets.Values.Update(s.spreadsheetID, rangeRef, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return &Error{Service: "sheets", Message: "failed to write rows", Cause: err}
	}

	return nil
}

// SheetValues flattens a report into the cell grid written to the sheet:
// a header row followed by one row per finding.
func SheetValues(report *types.AuditReport) [][]any {
	rows := report.FindingRows()
	values := make([][]any, 0, len(rows)+1)

	header := make([]any, len(headerRow))
	for i, h := range headerRow {
		header[i] = h
	}
	values = append(values, header)

	for _, row := range rows {
		values = append(values, []any{row.Type, row.Rule, row.Severity, row.Element, row.Suggestion})
	}
	return values
}
