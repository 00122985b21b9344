// Package types provides type definitions for structured data used throughout the audit agent.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category classifies an accessibility finding by the check that produced it.
type Category string

// Accessibility finding categories
const (
	CategoryAltText   Category = "alt-text"
	CategoryContrast  Category = "contrast"
	CategoryStructure Category = "structure"
	CategoryLanguage  Category = "language"
)

// Severity grades how serious a finding is.
type Severity string

// Severity levels
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// BoundingBox is an element's position on the rendered page, in CSS pixels.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AccessibilityFinding is a single issue reported by the static analyzer.
type AccessibilityFinding struct {
	Category    Category     `json:"category"`
	Severity    Severity     `json:"severity"`
	Description string       `json:"description"`
	ElementRef  string       `json:"element_ref,omitempty"`
	Suggestion  string       `json:"suggestion,omitempty"`
	Box         *BoundingBox `json:"box,omitempty"`
}

// HeuristicFinding is a single verdict produced by the LLM evaluator for one
// rubric item (a Nielsen heuristic or a WCAG checkpoint).
type HeuristicFinding struct {
	HeuristicID string   `json:"heuristic_id"`
	Rule        string   `json:"rule"`
	Verdict     string   `json:"verdict"`
	Severity    Severity `json:"severity"`
	Area        string   `json:"area,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}
