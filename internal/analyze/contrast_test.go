package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor_Hex(t *testing.T) {
	c := ParseColor("#ff0080")
	require.NotNil(t, c)
	assert.Equal(t, RGB{R: 255, G: 0, B: 128}, *c)
}

func TestParseColor_ShortHex(t *testing.T) {
	c := ParseColor("#f0c")
	require.NotNil(t, c)
	assert.Equal(t, RGB{R: 255, G: 0, B: 204}, *c)
}

func TestParseColor_RGB(t *testing.T) {
	c := ParseColor("rgb(12, 34, 56)")
	require.NotNil(t, c)
	assert.Equal(t, RGB{R: 12, G: 34, B: 56}, *c)
}

func TestParseColor_RGBA(t *testing.T) {
	c := ParseColor("rgba(255, 255, 255, 0.5)")
	require.NotNil(t, c)
	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, *c)
}

func TestParseColor_Invalid(t *testing.T) {
	assert.Nil(t, ParseColor(""))
	assert.Nil(t, ParseColor("red"))
	assert.Nil(t, ParseColor("#zzz"))
	assert.Nil(t, ParseColor("#12345"))
	assert.Nil(t, ParseColor("rgb(1, 2)"))
}

func TestLuminance_Bounds(t *testing.T) {
	assert.InDelta(t, 0.0, Luminance(RGB{0, 0, 0}), 0.001)
	assert.InDelta(t, 1.0, Luminance(RGB{255, 255, 255}), 0.001)
}

func TestContrastRatio_BlackOnWhite(t *testing.T) {
	ratio := ContrastRatio(RGB{0, 0, 0}, RGB{255, 255, 255})
	assert.InDelta(t, 21.0, ratio, 0.01)
}

func TestContrastRatio_OrderIndependent(t *testing.T) {
	a := RGB{30, 60, 90}
	b := RGB{200, 220, 240}
	assert.Equal(t, ContrastRatio(a, b), ContrastRatio(b, a))
}

func TestContrastRatio_SameColor(t *testing.T) {
	assert.InDelta(t, 1.0, ContrastRatio(RGB{100, 100, 100}, RGB{100, 100, 100}), 0.001)
}

func TestExtractInlineColors(t *testing.T) {
	color, background := ExtractInlineColors("font-size: 12px; color: #333; background-color: rgb(250, 250, 250)")
	assert.Equal(t, "#333", color)
	assert.Equal(t, "rgb(250, 250, 250)", background)
}

func TestExtractInlineColors_BackgroundShorthand(t *testing.T) {
	_, background := ExtractInlineColors("background: #fff")
	assert.Equal(t, "#fff", background)
}

func TestExtractInlineColors_NotBackgroundColor(t *testing.T) {
	// background-color must not be picked up as the text color.
	color, background := ExtractInlineColors("background-color: #000")
	assert.Empty(t, color)
	assert.Equal(t, "#000", background)
}

func TestExtractInlineColors_Empty(t *testing.T) {
	color, background := ExtractInlineColors("font-weight: bold")
	assert.Empty(t, color)
	assert.Empty(t, background)
}
