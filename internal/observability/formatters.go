// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSnapshot outputs a short summary of the fetched page.
func (p *Printer) PrintSnapshot(snap *types.PageSnapshot) {
	if snap == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:        %s\n", snap.URL))
	if snap.FinalURL != "" && snap.FinalURL != snap.URL {
		sb.WriteString(fmt.Sprintf("Final URL:  %s\n", snap.FinalURL))
	}
	sb.WriteString(fmt.Sprintf("Status:     %d\n", snap.StatusCode))
	sb.WriteString(fmt.Sprintf("HTML:       %d bytes\n", len(snap.HTML)))
	sb.WriteString(fmt.Sprintf("Screenshot: %d bytes", len(snap.Screenshot)))

	p.printBox("Page Snapshot", sb.String())
}

// PrintAccessibilityFindings outputs a summary of the static analyzer results.
func (p *Printer) PrintAccessibilityFindings(findings []types.AccessibilityFinding) {
	var sb strings.Builder
	if len(findings) == 0 {
		sb.WriteString("No issues found")
	}
	for i, f := range findings {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more", len(findings)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("[%s/%s] %s\n", f.Category, f.Severity, f.Description))
	}

	p.printBox(fmt.Sprintf("Accessibility Findings (%d)", len(findings)), strings.TrimRight(sb.String(), "\n"))
}

// PrintHeuristicFindings outputs a summary of the LLM evaluation results.
func (p *Printer) PrintHeuristicFindings(findings []types.HeuristicFinding) {
	var sb strings.Builder
	if len(findings) == 0 {
		sb.WriteString("No verdicts")
	}
	for _, f := range findings {
		sb.WriteString(fmt.Sprintf("[%s/%s] %s\n", f.HeuristicID, f.Severity, f.Rule))
	}

	p.printBox(fmt.Sprintf("Heuristic Findings (%d)", len(findings)), strings.TrimRight(sb.String(), "\n"))
}
