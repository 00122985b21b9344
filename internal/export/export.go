// Package export writes audit reports to external services. Exports are
// explicit user actions: nothing is written automatically, and exporting the
// same report twice creates two independent sets of entries.
package export

import (
	"context"
	"fmt"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// Error represents a failed export: authentication failure or an API error
// from the external service.
type Error struct {
	Service string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export to %s failed: %s: %v", e.Service, e.Message, e.Cause)
	}
	return fmt.Sprintf("export to %s failed: %s", e.Service, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Exporter writes a report to one external destination.
type Exporter interface {
	// Name identifies the destination ("notion", "sheets").
	Name() string
	// Export writes the report. The external state mutation is not
	// reversible by this system.
	Export(ctx context.Context, report *types.AuditReport) error
}

// headerRow is the column order shared by tabular exports.
var headerRow = []string{"type", "rule", "severity", "element", "suggestion"}
