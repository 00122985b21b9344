// Package analyze runs deterministic accessibility checks over captured
// page HTML. Analysis is a pure function of the snapshot: no network access,
// no failure mode. Absence of issues yields an empty sequence.
package analyze

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// maxElementRefLen bounds the element markup excerpt kept in a finding.
const maxElementRefLen = 100

// Run analyzes the snapshot HTML and returns an ordered finding sequence:
// alt-text issues in document order, then contrast, then structure, then
// language. Identical HTML always produces the identical sequence.
//
// When the snapshot carries element boxes captured in the browser, matching
// findings get a bounding box for screenshot annotation; without boxes the
// findings are the same, just unpositioned.
func Run(snap *types.PageSnapshot) []types.AccessibilityFinding {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		// Unparseable input is "no DOM to check", not a failure.
		return nil
	}

	var findings []types.AccessibilityFinding
	findings = append(findings, checkAltText(doc, snap.ImageBoxes)...)
	findings = append(findings, checkContrast(doc, snap.StyledBoxes)...)
	findings = append(findings, checkStructure(doc)...)
	findings = append(findings, checkLanguage(doc)...)
	return findings
}

// checkAltText reports every img element with a missing or blank alt
// attribute. Boxes are paired by the element reference the browser captured;
// positional pairing is only a fallback when the counts line up, because the
// browser skips images with a zero-size rendered box and a bare positional
// pairing would then shift every later finding onto the wrong box.
func checkAltText(doc *goquery.Document, boxes []types.ElementBox) []types.AccessibilityFinding {
	var sels []*goquery.Selection
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		alt, exists := sel.Attr("alt")
		if exists && strings.TrimSpace(alt) != "" {
			return
		}
		sels = append(sels, sel)
	})

	used := make([]bool, len(boxes))
	positional := len(boxes) == len(sels)

	var findings []types.AccessibilityFinding
	for i, sel := range sels {
		f := types.AccessibilityFinding{
			Category:    types.CategoryAltText,
			Severity:    types.SeverityHigh,
			Description: "Images must have alt text",
			ElementRef:  elementRef(sel),
			Suggestion:  "Add descriptive alt text to this image.",
		}
		if box := matchImageBox(boxes, used, browserRef(sel)); box != nil {
			f.Box = box
		} else if positional && !used[i] {
			used[i] = true
			box := boxes[i].Box
			f.Box = &box
		}
		findings = append(findings, f)
	}
	return findings
}

// matchImageBox finds the first unconsumed browser-captured box whose
// element reference matches.
func matchImageBox(boxes []types.ElementBox, used []bool, ref string) *types.BoundingBox {
	for i, b := range boxes {
		if used[i] {
			continue
		}
		if b.Ref == ref {
			used[i] = true
			box := b.Box
			return &box
		}
	}
	return nil
}

// browserRef builds the same element reference the in-browser collector
// produces: tag name plus #id, or the class list joined with dots.
func browserRef(sel *goquery.Selection) string {
	node := sel.Get(0)
	if node == nil {
		return ""
	}
	ref := node.Data
	if id, ok := sel.Attr("id"); ok && id != "" {
		return ref + "#" + id
	}
	if class, ok := sel.Attr("class"); ok && strings.TrimSpace(class) != "" {
		return ref + "." + strings.Join(strings.Fields(class), ".")
	}
	return ref
}

// checkContrast reports inline-styled elements whose text color and
// background fall below the WCAG minimum contrast ratio. Only inline styles
// are considered; computed styles would need a live DOM.
func checkContrast(doc *goquery.Document, boxes []types.StyledBox) []types.AccessibilityFinding {
	var findings []types.AccessibilityFinding
	used := make([]bool, len(boxes))

	doc.Find("*[style]").Each(func(_ int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		colorVal, bgVal := ExtractInlineColors(style)
		fg := ParseColor(colorVal)
		if fg == nil {
			return
		}
		bg := ParseColor(bgVal)
		if bg == nil {
			// No parseable background: assume white, like rendering on a
			// default page background.
			bg = &RGB{R: 255, G: 255, B: 255}
		}

		ratio := ContrastRatio(*fg, *bg)
		if ratio >= WCAGContrastRatio {
			return
		}

		severity := types.SeverityMedium
		if ratio < criticalContrastRatio {
			severity = types.SeverityHigh
		}

		f := types.AccessibilityFinding{
			Category:    types.CategoryContrast,
			Severity:    severity,
			Description: "Text must have sufficient color contrast",
			ElementRef:  fmt.Sprintf("%s | color: %s, background: %s", elementRef(sel), colorVal, bgVal),
			Suggestion: fmt.Sprintf("Increase contrast between text color %s and background %s (ratio: %.2f).",
				colorVal, bgVal, ratio),
		}
		if box := matchStyledBox(boxes, used, colorVal, bgVal); box != nil {
			f.Box = box
		}
		findings = append(findings, f)
	})
	return findings
}

// matchStyledBox finds the first unconsumed browser-captured box with the
// same inline color values.
func matchStyledBox(boxes []types.StyledBox, used []bool, color, background string) *types.BoundingBox {
	for i, b := range boxes {
		if used[i] {
			continue
		}
		if b.Color == color && b.Background == background {
			used[i] = true
			box := b.Box
			return &box
		}
	}
	return nil
}

// checkStructure reports document structure issues: missing title, missing
// or repeated h1, and skipped heading levels (WCAG 2.4.2, 2.4.6).
func checkStructure(doc *goquery.Document) []types.AccessibilityFinding {
	var findings []types.AccessibilityFinding

	if strings.TrimSpace(doc.Find("head title").First().Text()) == "" {
		findings = append(findings, types.AccessibilityFinding{
			Category:    types.CategoryStructure,
			Severity:    types.SeverityMedium,
			Description: "Page must have a title",
			Suggestion:  "Add a descriptive <title> element to the document head.",
		})
	}

	h1Count := doc.Find("h1").Length()
	switch {
	case h1Count == 0:
		findings = append(findings, types.AccessibilityFinding{
			Category:    types.CategoryStructure,
			Severity:    types.SeverityMedium,
			Description: "Page should have a top-level heading",
			Suggestion:  "Add a single <h1> describing the main content.",
		})
	case h1Count > 1:
		findings = append(findings, types.AccessibilityFinding{
			Category:    types.CategoryStructure,
			Severity:    types.SeverityLow,
			Description: fmt.Sprintf("Page has %d h1 elements", h1Count),
			Suggestion:  "Use a single <h1> and nest the rest as h2-h6.",
		})
	}

	prevLevel := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		level := int(sel.Get(0).Data[1] - '0')
		if prevLevel > 0 && level > prevLevel+1 {
			findings = append(findings, types.AccessibilityFinding{
				Category:    types.CategoryStructure,
				Severity:    types.SeverityLow,
				Description: fmt.Sprintf("Heading level skipped: h%d follows h%d", level, prevLevel),
				ElementRef:  elementRef(sel),
				Suggestion:  fmt.Sprintf("Use h%d here, or restructure the outline.", prevLevel+1),
			})
		}
		prevLevel = level
	})

	return findings
}

// checkLanguage reports a missing or blank lang attribute on the html
// element (WCAG 3.1.1).
func checkLanguage(doc *goquery.Document) []types.AccessibilityFinding {
	lang, exists := doc.Find("html").First().Attr("lang")
	if exists && strings.TrimSpace(lang) != "" {
		return nil
	}
	return []types.AccessibilityFinding{{
		Category:    types.CategoryLanguage,
		Severity:    types.SeverityMedium,
		Description: "Document language is not declared",
		Suggestion:  `Add a lang attribute to the <html> element, e.g. <html lang="en">.`,
	}}
}

// elementRef builds a short reference to an element: a truncated markup
// excerpt plus id/class when present.
func elementRef(sel *goquery.Selection) string {
	markup, err := goquery.OuterHtml(sel)
	if err != nil {
		markup = ""
	}
	markup = strings.Join(strings.Fields(markup), " ")
	if len(markup) > maxElementRefLen {
		markup = markup[:maxElementRefLen]
	}
	ref := markup
	if id, ok := sel.Attr("id"); ok && id != "" {
		ref += " | id=" + id
	}
	if class, ok := sel.Attr("class"); ok && class != "" {
		ref += " | class=" + class
	}
	return ref
}
