package render

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testCodePNG builds a small all-black PNG standing in for a code image
func testCodePNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test code image: %v", err)
	}
	return buf.Bytes()
}

func TestNewEngine(t *testing.T) {
	// Act
	engine := NewEngine()

	// Assert
	assert.NotNil(t, engine)
}

func TestTemplateNames(t *testing.T) {
	// Assert
	assert.Equal(t, "qr", TemplateQR.Name())
	assert.Equal(t, "barcode", TemplateBarcode.Name())
}

func TestCompose_ProducesPDFDocument(t *testing.T) {
	// Arrange
	engine := NewEngine()

	// Act
	doc, err := engine.Compose(TemplateQR, "Widget", testCodePNG(t))

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, doc)
	assert.True(t, bytes.HasPrefix(doc.PDF, []byte("%PDF")))
	assert.Contains(t, string(doc.PDF), "/Count 1\n") // single-page documents only
	assert.Equal(t, PageWidthIn, doc.PageWidth)
	assert.Equal(t, PageHeightIn, doc.PageHeight)
}

func TestCompose_ShortNameFitsAtMaxSize(t *testing.T) {
	// Arrange
	engine := NewEngine()

	// Act
	doc, err := engine.Compose(TemplateQR, "Widget", testCodePNG(t))

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, qrMaxFontSize, doc.Fit.FontSize)
	assert.True(t, doc.Fit.Fits)
	assert.InDelta(t, 0.3, doc.Fit.Height, 0.001)
}

func TestCompose_LongNameStepsDown(t *testing.T) {
	// Arrange
	engine := NewEngine()
	name := strings.TrimSpace(strings.Repeat("Widget ", 9))

	// Act
	doc, err := engine.Compose(TemplateQR, name, testCodePNG(t))

	// Assert - nine words wrap three per line only once the size drops to 13
	assert.NoError(t, err)
	assert.Equal(t, 13, doc.Fit.FontSize)
	assert.True(t, doc.Fit.Fits)
	assert.Len(t, doc.plan.lines, 3)
}

func TestCompose_OverflowClipsAtMinimumSize(t *testing.T) {
	// Arrange
	engine := NewEngine()
	name := strings.Repeat("a", 600)

	// Act
	doc, err := engine.Compose(TemplateQR, name, testCodePNG(t))

	// Assert - composition succeeds, the overflow is clipped at render time
	assert.NoError(t, err)
	assert.Equal(t, minFontSize, doc.Fit.FontSize)
	assert.False(t, doc.Fit.Fits)
	assert.Greater(t, doc.Fit.Height, TemplateQR.text.h)
}

func TestCompose_VerticallyCentersText(t *testing.T) {
	// Arrange
	engine := NewEngine()

	// Act
	doc, err := engine.Compose(TemplateQR, "Widget", testCodePNG(t))

	// Assert - one 0.3" line centered in the 0.9" region starts 0.3" in
	assert.NoError(t, err)
	expectedTop := TemplateQR.text.y + (TemplateQR.text.h-doc.Fit.Height)/2
	assert.InDelta(t, expectedTop, doc.plan.textTopIn, 0.0001)
	assert.InDelta(t, 0.35, doc.plan.textTopIn, 0.001)
}

func TestCompose_CapturesPlacementPlan(t *testing.T) {
	// Arrange
	engine := NewEngine()
	codePNG := testCodePNG(t)

	// Act
	doc, err := engine.Compose(TemplateQR, "Widget", codePNG)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"Widget"}, doc.plan.lines)
	assert.Equal(t, doc.Fit.FontSize, doc.plan.fontSize)
	assert.Equal(t, codePNG, doc.plan.codePNG)
	assert.Equal(t, "qr", doc.plan.template.Name())
	assert.InDelta(t, leadingIn(doc.Fit.FontSize), doc.plan.lineHtIn, 0.0001)
}

func TestCompose_FontSizeNeverGrowsWithLongerName(t *testing.T) {
	// Arrange
	engine := NewEngine()

	// Act
	short, err := engine.Compose(TemplateQR, "Pressure Valve", testCodePNG(t))
	assert.NoError(t, err)
	long, err := engine.Compose(TemplateQR, "Pressure Valve Extended Edition", testCodePNG(t))

	// Assert
	assert.NoError(t, err)
	assert.LessOrEqual(t, long.Fit.FontSize, short.Fit.FontSize)
}

func TestCompose_BarcodeShortNameTier(t *testing.T) {
	// Arrange
	engine := NewEngine()
	name := strings.Repeat("I", barcodeNameThreshold)

	// Act
	doc, err := engine.Compose(TemplateBarcode, name, testCodePNG(t))

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, barcodeShortNameFont, doc.Fit.FontSize)
	assert.True(t, doc.Fit.Fits)
}

func TestCompose_BarcodeLongNameTier(t *testing.T) {
	// Arrange
	engine := NewEngine()
	name := strings.Repeat("I", barcodeNameThreshold+1)

	// Act
	doc, err := engine.Compose(TemplateBarcode, name, testCodePNG(t))

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, barcodeLongNameFont, doc.Fit.FontSize)
	assert.True(t, doc.Fit.Fits)
}

func TestCompose_InvalidCodeImage(t *testing.T) {
	// Arrange
	engine := NewEngine()

	// Act
	doc, err := engine.Compose(TemplateQR, "Widget", []byte("not a png"))

	// Assert
	assert.ErrorIs(t, err, ErrBackend)
	assert.Nil(t, doc)
}

func TestFitText_EmptyNameStaysAtMaxSize(t *testing.T) {
	// Arrange
	engine := NewEngine()

	// Act
	doc, err := engine.Compose(TemplateQR, "", testCodePNG(t))

	// Assert - nothing to wrap, nothing to shrink
	assert.NoError(t, err)
	assert.Equal(t, qrMaxFontSize, doc.Fit.FontSize)
	assert.True(t, doc.Fit.Fits)
	assert.Empty(t, doc.plan.lines)
}
