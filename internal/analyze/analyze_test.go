package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

const cleanHTML = `<!DOCTYPE html>
<html lang="en">
<head><title>Clean page</title></head>
<body>
<h1>Heading</h1>
<h2>Subheading</h2>
<img src="logo.png" alt="Company logo">
<p>Some content</p>
</body>
</html>`

func snapshotFor(html string) *types.PageSnapshot {
	return &types.PageSnapshot{URL: "https://example.com", HTML: html}
}

func TestRun_CleanPageHasNoFindings(t *testing.T) {
	findings := Run(snapshotFor(cleanHTML))
	assert.Empty(t, findings)
}

func TestRun_IsDeterministic(t *testing.T) {
	html := `<html><body><img src="a.png"><img src="b.png"><p style="color: #999;">dim</p></body></html>`
	first := Run(snapshotFor(html))
	second := Run(snapshotFor(html))
	assert.Equal(t, first, second)
}

func TestRun_FindingOrder(t *testing.T) {
	html := `<html><head></head><body>
		<img src="a.png">
		<p style="color: #aaa; background-color: #fff;">low contrast</p>
	</body></html>`

	findings := Run(snapshotFor(html))
	require.NotEmpty(t, findings)

	// Categories appear in fixed order: alt-text, contrast, structure, language.
	var order []types.Category
	for _, f := range findings {
		if len(order) == 0 || order[len(order)-1] != f.Category {
			order = append(order, f.Category)
		}
	}
	assert.Equal(t, []types.Category{
		types.CategoryAltText,
		types.CategoryContrast,
		types.CategoryStructure,
		types.CategoryLanguage,
	}, order)
}

func TestCheckAltText_MissingAlt(t *testing.T) {
	html := `<html lang="en"><head><title>t</title></head><body>
		<h1>h</h1>
		<img src="hero.png" id="hero" class="banner">
		<img src="ok.png" alt="described">
		<img src="blank.png" alt="   ">
	</body></html>`

	findings := Run(snapshotFor(html))
	require.Len(t, findings, 2)

	assert.Equal(t, types.CategoryAltText, findings[0].Category)
	assert.Equal(t, types.SeverityHigh, findings[0].Severity)
	assert.Contains(t, findings[0].ElementRef, "hero.png")
	assert.Contains(t, findings[0].ElementRef, "id=hero")
	assert.Contains(t, findings[0].ElementRef, "class=banner")

	// Whitespace-only alt counts as missing.
	assert.Contains(t, findings[1].ElementRef, "blank.png")
}

func TestCheckAltText_BoxesPairedByRef(t *testing.T) {
	html := `<html lang="en"><head><title>t</title></head><body><h1>h</h1>
		<img src="first.png" id="first">
		<img src="second.png" class="hero wide">
	</body></html>`

	snap := snapshotFor(html)
	// Captured out of document order; the reference decides the pairing.
	snap.ImageBoxes = []types.ElementBox{
		{Ref: "img.hero.wide", Box: types.BoundingBox{X: 30, Y: 40, Width: 200, Height: 80}},
		{Ref: "img#first", Box: types.BoundingBox{X: 10, Y: 20, Width: 100, Height: 50}},
	}

	findings := Run(snap)
	require.Len(t, findings, 2)
	require.NotNil(t, findings[0].Box)
	assert.Equal(t, 10.0, findings[0].Box.X)
	require.NotNil(t, findings[1].Box)
	assert.Equal(t, 30.0, findings[1].Box.X)
}

func TestCheckAltText_UnrenderedImageLeavesLaterBoxesAligned(t *testing.T) {
	// The browser captures no box for an image with a zero-size rendered
	// box, so fewer boxes than alt-less images can arrive. The remaining
	// boxes must land on their own elements, not shift onto earlier ones.
	html := `<html lang="en"><head><title>t</title></head><body><h1>h</h1>
		<img src="hidden.png" style="display:none">
		<img src="visible.png" id="visible">
	</body></html>`

	snap := snapshotFor(html)
	snap.ImageBoxes = []types.ElementBox{
		{Ref: "img#visible", Box: types.BoundingBox{X: 50, Y: 60, Width: 120, Height: 90}},
	}

	findings := Run(snap)

	altFindings := findingsOf(findings, types.CategoryAltText)
	require.Len(t, altFindings, 2)
	assert.Nil(t, altFindings[0].Box, "hidden image has no captured box")
	require.NotNil(t, altFindings[1].Box)
	assert.Equal(t, 50.0, altFindings[1].Box.X)
}

func TestCheckAltText_PositionalFallbackWhenCountsMatch(t *testing.T) {
	html := `<html lang="en"><head><title>t</title></head><body><h1>h</h1>
		<img src="first.png">
		<img src="second.png">
	</body></html>`

	snap := snapshotFor(html)
	// References that no longer resolve (the DOM changed after capture);
	// with equal counts, document order still pairs them.
	snap.ImageBoxes = []types.ElementBox{
		{Ref: "img#gone", Box: types.BoundingBox{X: 10, Y: 20, Width: 100, Height: 50}},
		{Ref: "img#also-gone", Box: types.BoundingBox{X: 30, Y: 40, Width: 100, Height: 50}},
	}

	findings := Run(snap)
	require.Len(t, findings, 2)
	require.NotNil(t, findings[0].Box)
	assert.Equal(t, 10.0, findings[0].Box.X)
	require.NotNil(t, findings[1].Box)
	assert.Equal(t, 30.0, findings[1].Box.X)
}

func findingsOf(findings []types.AccessibilityFinding, cat types.Category) []types.AccessibilityFinding {
	var out []types.AccessibilityFinding
	for _, f := range findings {
		if f.Category == cat {
			out = append(out, f)
		}
	}
	return out
}

func TestCheckContrast_SeverityByRatio(t *testing.T) {
	// White on white is far below 3.0; gray on white sits between 3.0 and 4.5.
	html := `<html lang="en"><head><title>t</title></head><body><h1>h</h1>
		<p style="color: #ffffff; background-color: #ffffff;">invisible</p>
		<p style="color: #888888; background-color: #ffffff;">faint</p>
	</body></html>`

	findings := Run(snapshotFor(html))
	require.Len(t, findings, 2)

	assert.Equal(t, types.CategoryContrast, findings[0].Category)
	assert.Equal(t, types.SeverityHigh, findings[0].Severity)
	assert.Equal(t, types.SeverityMedium, findings[1].Severity)
	assert.Contains(t, findings[1].Suggestion, "ratio:")
}

func TestCheckContrast_AssumesWhiteBackground(t *testing.T) {
	html := `<html lang="en"><head><title>t</title></head><body><h1>h</h1>
		<p style="color: #eeeeee;">no declared background</p>
	</body></html>`

	findings := Run(snapshotFor(html))
	require.Len(t, findings, 1)
	assert.Equal(t, types.CategoryContrast, findings[0].Category)
}

func TestCheckContrast_SufficientContrastPasses(t *testing.T) {
	html := `<html lang="en"><head><title>t</title></head><body><h1>h</h1>
		<p style="color: #000000; background-color: #ffffff;">fine</p>
	</body></html>`

	findings := Run(snapshotFor(html))
	assert.Empty(t, findings)
}

func TestCheckContrast_MatchesStyledBox(t *testing.T) {
	html := `<html lang="en"><head><title>t</title></head><body><h1>h</h1>
		<p style="color: #ffffff; background-color: #ffffff;">invisible</p>
	</body></html>`

	snap := snapshotFor(html)
	snap.StyledBoxes = []types.StyledBox{
		{Color: "#ffffff", Background: "#ffffff", Box: types.BoundingBox{X: 5, Y: 6, Width: 7, Height: 8}},
	}

	findings := Run(snap)
	require.Len(t, findings, 1)
	require.NotNil(t, findings[0].Box)
	assert.Equal(t, 5.0, findings[0].Box.X)
}

func TestCheckStructure_MissingTitleAndH1(t *testing.T) {
	html := `<html lang="en"><head></head><body><p>no headings</p></body></html>`

	findings := Run(snapshotFor(html))
	require.Len(t, findings, 2)
	assert.Equal(t, "Page must have a title", findings[0].Description)
	assert.Equal(t, "Page should have a top-level heading", findings[1].Description)
}

func TestCheckStructure_MultipleH1(t *testing.T) {
	html := `<html lang="en"><head><title>t</title></head><body>
		<h1>one</h1><h1>two</h1>
	</body></html>`

	findings := Run(snapshotFor(html))
	require.Len(t, findings, 1)
	assert.Equal(t, types.SeverityLow, findings[0].Severity)
	assert.Contains(t, findings[0].Description, "2 h1 elements")
}

func TestCheckStructure_SkippedHeadingLevel(t *testing.T) {
	html := `<html lang="en"><head><title>t</title></head><body>
		<h1>top</h1><h4>way down</h4>
	</body></html>`

	findings := Run(snapshotFor(html))
	require.Len(t, findings, 1)
	assert.Equal(t, types.CategoryStructure, findings[0].Category)
	assert.Contains(t, findings[0].Description, "h4 follows h1")
	assert.Contains(t, findings[0].Suggestion, "h2")
}

func TestCheckStructure_ConsecutiveLevelsPass(t *testing.T) {
	html := `<html lang="en"><head><title>t</title></head><body>
		<h1>a</h1><h2>b</h2><h3>c</h3><h2>back up is fine</h2>
	</body></html>`

	findings := Run(snapshotFor(html))
	assert.Empty(t, findings)
}

func TestCheckLanguage_MissingLang(t *testing.T) {
	html := `<html><head><title>t</title></head><body><h1>h</h1></body></html>`

	findings := Run(snapshotFor(html))
	require.Len(t, findings, 1)
	assert.Equal(t, types.CategoryLanguage, findings[0].Category)
	assert.Equal(t, types.SeverityMedium, findings[0].Severity)
}

func TestRun_EmptyHTML(t *testing.T) {
	findings := Run(snapshotFor(""))
	// An empty document still lacks title, h1 and lang.
	assert.Len(t, findings, 3)
}

func TestElementRef_Truncated(t *testing.T) {
	long := `<html lang="en"><head><title>t</title></head><body><h1>h</h1>
		<img src="` + strings.Repeat("a", 200) + `.png">
	</body></html>`

	findings := Run(snapshotFor(long))
	require.Len(t, findings, 1)
	// Excerpt is capped; the id/class suffixes come after.
	assert.LessOrEqual(t, len(findings[0].ElementRef), maxElementRefLen)
}
