package export

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

func testReport() *types.AuditReport {
	return &types.AuditReport{
		ID:      uuid.New(),
		Request: types.AuditRequest{URL: "https://example.com"},
		Accessibility: []types.AccessibilityFinding{
			{
				Category:    types.CategoryAltText,
				Severity:    types.SeverityHigh,
				Description: "Images must have alt text",
				ElementRef:  `<img src="x.png">`,
				Suggestion:  "Add descriptive alt text to this image.",
			},
		},
		Heuristics: []types.HeuristicFinding{
			{
				HeuristicID: "nielsen-1",
				Rule:        "Visibility of system status",
				Verdict:     "fail",
				Severity:    types.SeverityMedium,
				Area:        "checkout form",
				Suggestion:  "Show a progress indicator.",
			},
		},
	}
}

func TestFindingRows_OrderAndMapping(t *testing.T) {
	rows := testReport().FindingRows()
	require.Len(t, rows, 2)

	// Accessibility findings precede heuristic findings.
	assert.Equal(t, "WCAG", rows[0].Type)
	assert.Equal(t, "Images must have alt text", rows[0].Rule)
	assert.Equal(t, "high", rows[0].Severity)
	assert.Equal(t, `<img src="x.png">`, rows[0].Element)

	assert.Equal(t, "Heuristic", rows[1].Type)
	assert.Equal(t, "Visibility of system status", rows[1].Rule)
	assert.Equal(t, "medium", rows[1].Severity)
	assert.Equal(t, "checkout form", rows[1].Element)
	assert.Equal(t, "Show a progress indicator.", rows[1].Suggestion)
}

func TestSheetValues(t *testing.T) {
	values := SheetValues(testReport())
	require.Len(t, values, 3)

	assert.Equal(t, []any{"type", "rule", "severity", "element", "suggestion"}, values[0])
	assert.Equal(t, "WCAG", values[1][0])
	assert.Equal(t, "Heuristic", values[2][0])
}

func TestSheetValues_EmptyReport(t *testing.T) {
	report := &types.AuditReport{ID: uuid.New()}
	values := SheetValues(report)
	require.Len(t, values, 1, "header row only")
}

func TestExporterNames(t *testing.T) {
	assert.Equal(t, "notion", NewNotionExporter("token", "db").Name())
	assert.Equal(t, "sheets", NewSheetsExporter("creds.json", "sheet").Name())
}

func TestError_Format(t *testing.T) {
	err := &Error{Service: "notion", Message: "page creation failed"}
	assert.Contains(t, err.Error(), "notion")
	assert.Contains(t, err.Error(), "page creation failed")

	wrapped := &Error{Service: "sheets", Message: "request failed", Cause: assert.AnError}
	assert.ErrorIs(t, wrapped, assert.AnError)
}
