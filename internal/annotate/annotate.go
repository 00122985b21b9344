// Package annotate draws finding positions onto page screenshots so issues
// can be seen in place. Only findings that carry a bounding box are drawn.
package annotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// borderWidth is the thickness of the highlight rectangle, in pixels.
const borderWidth = 4

// highlight is the border color for flagged elements.
var highlight = color.RGBA{R: 0xff, A: 0xff}

// Screenshot returns a copy of the PNG screenshot with a red rectangle
// around every finding that has a bounding box. Boxes partly outside the
// image are clipped; with no positioned findings the screenshot is returned
// re-encoded but otherwise unchanged.
func Screenshot(screenshot []byte, findings []types.AccessibilityFinding) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(screenshot))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}

	bounds := src.Bounds()
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, src, bounds.Min, draw.Src)

	for _, f := range findings {
		if f.Box == nil {
			continue
		}
		drawBorder(img, rectFromBox(*f.Box), borderWidth)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode annotated screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

func rectFromBox(box types.BoundingBox) image.Rectangle {
	return image.Rect(int(box.X), int(box.Y), int(box.X+box.Width), int(box.Y+box.Height))
}

// drawBorder paints a hollow rectangle of the given thickness, clipped to
// the image bounds.
func drawBorder(img *image.RGBA, rect image.Rectangle, width int) {
	edges := []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width), // top
		image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y), // bottom
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+width, rect.Max.Y), // left
		image.Rect(rect.Max.X-width, rect.Min.Y, rect.Max.X, rect.Max.Y), // right
	}
	for _, edge := range edges {
		draw.Draw(img, edge.Intersect(img.Bounds()), &image.Uniform{C: highlight}, image.Point{}, draw.Src)
	}
}
