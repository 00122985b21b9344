package types

import (
	"time"

	"github.com/google/uuid"
)

// AuditRequest is one user submission. Immutable once created.
type AuditRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

// AuditReport is the combined output of one audit run. Reports live in
// server memory for the session; the only durable copy is whatever an
// explicit export writes into the external service.
type AuditReport struct {
	ID            uuid.UUID              `json:"id"`
	Request       AuditRequest           `json:"request"`
	Snapshot      *PageSnapshot          `json:"snapshot,omitempty"`
	Accessibility []AccessibilityFinding `json:"accessibility"`
	Heuristics    []HeuristicFinding     `json:"heuristics"`
	CreatedAt     time.Time              `json:"created_at"`
	ExportedAt    *time.Time             `json:"exported_at,omitempty"`
}

// FindingRows flattens a report into uniform rows for tabular exports.
// Accessibility findings come first, then heuristic findings, matching the
// order the pipeline produced them in.
func (r *AuditReport) FindingRows() []FindingRow {
	rows := make([]FindingRow, 0, len(r.Accessibility)+len(r.Heuristics))
	for _, f := range r.Accessibility {
		rows = append(rows, FindingRow{
			Type:       "WCAG",
			Rule:       f.Description,
			Severity:   string(f.Severity),
			Element:    f.ElementRef,
			Suggestion: f.Suggestion,
		})
	}
	for _, f := range r.Heuristics {
		rows = append(rows, FindingRow{
			Type:       "Heuristic",
			Rule:       f.Rule,
			Severity:   string(f.Severity),
			Element:    f.Area,
			Suggestion: f.Suggestion,
		})
	}
	return rows
}

// FindingRow is one flattened finding as written to Notion or Sheets.
type FindingRow struct {
	Type       string
	Rule       string
	Severity   string
	Element    string
	Suggestion string
}
