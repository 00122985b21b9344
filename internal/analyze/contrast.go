package analyze

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// WCAGContrastRatio is the minimum contrast ratio for normal text
// (WCAG 2.2, 1.4.3 Contrast Minimum).
const WCAGContrastRatio = 4.5

// criticalContrastRatio is the threshold below which a contrast finding is
// reported as high severity instead of medium.
const criticalContrastRatio = 3.0

var (
	colorRe      = regexp.MustCompile(`(?:^|[\s;])color:\s*([^;]+)`)
	backgroundRe = regexp.MustCompile(`background(?:-color)?:\s*([^;]+)`)
	numberRe     = regexp.MustCompile(`[\d.]+`)
)

// RGB is a parsed sRGB color.
type RGB struct {
	R, G, B int
}

// ExtractInlineColors pulls the text color and background color values out
// of an inline style attribute. Either value may be empty.
func ExtractInlineColors(style string) (color, background string) {
	if m := colorRe.FindStringSubmatch(style); m != nil {
		color = strings.TrimSpace(m[1])
	}
	if m := backgroundRe.FindStringSubmatch(style); m != nil {
		background = strings.TrimSpace(m[1])
	}
	return color, background
}

// ParseColor parses a CSS color value in hex (#fff, #ffffff) or rgb()/rgba()
// form. Returns nil for anything else, including named colors.
func ParseColor(val string) *RGB {
	val = strings.TrimSpace(val)
	switch {
	case strings.HasPrefix(val, "#"):
		return parseHex(strings.TrimPrefix(val, "#"))
	case strings.HasPrefix(val, "rgb"):
		nums := numberRe.FindAllString(val, -1)
		if len(nums) < 3 {
			return nil
		}
		var ch [3]int
		for i := 0; i < 3; i++ {
			f, err := strconv.ParseFloat(nums[i], 64)
			if err != nil {
				return nil
			}
			ch[i] = int(f)
		}
		return &RGB{R: ch[0], G: ch[1], B: ch[2]}
	default:
		return nil
	}
}

func parseHex(hex string) *RGB {
	switch len(hex) {
	case 3:
		vals := make([]int, 3)
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseInt(string(hex[i])+string(hex[i]), 16, 0)
			if err != nil {
				return nil
			}
			vals[i] = int(v)
		}
		return &RGB{R: vals[0], G: vals[1], B: vals[2]}
	case 6:
		vals := make([]int, 3)
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseInt(hex[i*2:i*2+2], 16, 0)
			if err != nil {
				return nil
			}
			vals[i] = int(v)
		}
		return &RGB{R: vals[0], G: vals[1], B: vals[2]}
	default:
		return nil
	}
}

// Luminance computes the WCAG relative luminance of a color.
func Luminance(c RGB) float64 {
	channel := func(v int) float64 {
		f := float64(v) / 255.0
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(c.R) + 0.7152*channel(c.G) + 0.0722*channel(c.B)
}

// ContrastRatio computes the WCAG contrast ratio between two colors.
// The result is in [1, 21], independent of argument order.
func ContrastRatio(a, b RGB) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)
	lighter := math.Max(l1, l2)
	darker := math.Min(l1, l2)
	return (lighter + 0.05) / (darker + 0.05)
}
