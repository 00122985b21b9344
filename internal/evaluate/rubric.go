package evaluate

import (
	"fmt"
	"strings"
)

// RubricItem is one fixed evaluation criterion: a Nielsen heuristic or a
// WCAG 2.2 checkpoint.
type RubricItem struct {
	ID   string
	Name string
}

// nielsenHeuristics are Nielsen's 10 usability heuristics, in their
// canonical order.
var nielsenHeuristics = []RubricItem{
	{ID: "nielsen-1", Name: "Visibility of system status"},
	{ID: "nielsen-2", Name: "Match between system and the real world"},
	{ID: "nielsen-3", Name: "User control and freedom"},
	{ID: "nielsen-4", Name: "Consistency and standards"},
	{ID: "nielsen-5", Name: "Error prevention"},
	{ID: "nielsen-6", Name: "Recognition rather than recall"},
	{ID: "nielsen-7", Name: "Flexibility and efficiency of use"},
	{ID: "nielsen-8", Name: "Aesthetic and minimalist design"},
	{ID: "nielsen-9", Name: "Help users recognize, diagnose, and recover from errors"},
	{ID: "nielsen-10", Name: "Help and documentation"},
}

// wcagCheckpoints are the WCAG 2.2 success criteria the evaluator asks the
// model to judge. Criteria the static analyzer covers mechanically
// (alt text, contrast, headings, page language) are still included so the
// model can catch cases the heuristics miss, e.g. decorative alt text.
var wcagCheckpoints = []RubricItem{
	{ID: "wcag-1.1.1", Name: "Non-text Content"},
	{ID: "wcag-1.3.1", Name: "Info and Relationships"},
	{ID: "wcag-1.4.3", Name: "Contrast (Minimum)"},
	{ID: "wcag-2.1.1", Name: "Keyboard"},
	{ID: "wcag-2.4.2", Name: "Page Titled"},
	{ID: "wcag-2.4.6", Name: "Headings and Labels"},
	{ID: "wcag-3.1.1", Name: "Language of Page"},
	{ID: "wcag-3.3.2", Name: "Labels or Instructions"},
	{ID: "wcag-4.1.2", Name: "Name, Role, Value"},
}

// Rubric returns the full fixed rubric in its canonical enumeration order:
// Nielsen heuristics first, then WCAG checkpoints. Finding order in reports
// follows this enumeration.
func Rubric() []RubricItem {
	rubric := make([]RubricItem, 0, len(nielsenHeuristics)+len(wcagCheckpoints))
	rubric = append(rubric, nielsenHeuristics...)
	rubric = append(rubric, wcagCheckpoints...)
	return rubric
}

// rubricText renders the rubric as the bulleted list embedded in the prompt.
func rubricText() string {
	var sb strings.Builder
	for _, item := range Rubric() {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", item.ID, item.Name))
	}
	return sb.String()
}

// rubricIndex maps heuristic IDs to their enumeration position.
func rubricIndex() map[string]int {
	idx := make(map[string]int)
	for i, item := range Rubric() {
		idx[item.ID] = i
	}
	return idx
}
