package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

// decodePreview decodes preview bytes into an image
func decodePreview(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode preview image: %v", err)
	}
	return img
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r < 0x8000 && g < 0x8000 && b < 0x8000
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

// darkPixelIn reports whether any pixel in the given region is dark
func darkPixelIn(img image.Image, x0, y0, x1, y1 int) bool {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if isDark(img.At(x, y)) {
				return true
			}
		}
	}
	return false
}

func TestPreview_Dimensions(t *testing.T) {
	// Arrange
	engine := NewEngine()
	doc, err := engine.Compose(TemplateQR, "Widget", testCodePNG(t))
	assert.NoError(t, err)

	// Act
	preview, err := engine.Preview(doc)

	// Assert - 3"x1" at 150 DPI
	assert.NoError(t, err)
	img := decodePreview(t, preview)
	assert.Equal(t, 450, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestPreview_WhiteBackground(t *testing.T) {
	// Arrange
	engine := NewEngine()
	doc, err := engine.Compose(TemplateQR, "Widget", testCodePNG(t))
	assert.NoError(t, err)

	// Act
	preview, err := engine.Preview(doc)

	// Assert - corners outside the code and text regions stay white
	assert.NoError(t, err)
	img := decodePreview(t, preview)
	assert.True(t, isWhite(img.At(449, 0)))
	assert.True(t, isWhite(img.At(0, 149)))
}

func TestPreview_DrawsCodeImage(t *testing.T) {
	// Arrange - the stand-in code image is solid black
	engine := NewEngine()
	doc, err := engine.Compose(TemplateQR, "Widget", testCodePNG(t))
	assert.NoError(t, err)

	// Act
	preview, err := engine.Preview(doc)

	// Assert - the center of the code region carries the scaled image
	assert.NoError(t, err)
	img := decodePreview(t, preview)
	assert.True(t, isDark(img.At(75, 75)))
}

func TestPreview_DrawsNameText(t *testing.T) {
	// Arrange
	engine := NewEngine()
	doc, err := engine.Compose(TemplateQR, "Widget", testCodePNG(t))
	assert.NoError(t, err)

	// Act
	preview, err := engine.Preview(doc)

	// Assert - glyph pixels land inside the text region right of the code
	assert.NoError(t, err)
	img := decodePreview(t, preview)
	assert.True(t, darkPixelIn(img, 150, 8, 443, 143))
}

func TestPreview_CentersBarcodeText(t *testing.T) {
	// Arrange
	engine := NewEngine()
	doc, err := engine.Compose(TemplateBarcode, "AB", testCodePNG(t))
	assert.NoError(t, err)

	// Act
	preview, err := engine.Preview(doc)

	// Assert - the short name lands around the horizontal center, not the edge
	assert.NoError(t, err)
	img := decodePreview(t, preview)
	assert.True(t, darkPixelIn(img, 190, 83, 260, 143))
	assert.False(t, darkPixelIn(img, 8, 83, 120, 143))
}

func TestPreview_Deterministic(t *testing.T) {
	// Arrange
	engine := NewEngine()
	doc, err := engine.Compose(TemplateQR, "Widget", testCodePNG(t))
	assert.NoError(t, err)

	// Act
	first, err := engine.Preview(doc)
	assert.NoError(t, err)
	second, err := engine.Preview(doc)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPreview_CorruptCodeImage(t *testing.T) {
	// Arrange
	engine := NewEngine()
	doc := &Document{
		PageWidth:  PageWidthIn,
		PageHeight: PageHeightIn,
		Fit:        TextFit{FontSize: 18, Height: 0.3, Fits: true},
		plan: placementPlan{
			template:  TemplateQR,
			codePNG:   []byte("junk"),
			lines:     []string{"Widget"},
			fontSize:  18,
			lineHtIn:  0.3,
			textTopIn: 0.35,
		},
	}

	// Act
	preview, err := engine.Preview(doc)

	// Assert
	assert.ErrorIs(t, err, ErrPreviewUnavailable)
	assert.Nil(t, preview)
}
