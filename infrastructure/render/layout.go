// Package render composes the fixed 3"x1" label page and rasterizes its
// preview. A Document is sealed on creation: the finished PDF bytes plus the
// placement plan the preview is drawn from.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// Label page geometry, in inches.
const (
	PageWidthIn  = 3.0
	PageHeightIn = 1.0

	paddingIn = 0.05
	qrSizeIn  = PageHeightIn - 2*paddingIn

	barcodeWidthIn  = 2.4
	barcodeHeightIn = 0.45
)

// Font fitting bounds, in points.
const (
	minFontSize   = 6
	qrMaxFontSize = 18

	// The barcode template starts its search one tier lower for long names.
	barcodeShortNameFont = 16
	barcodeLongNameFont  = 14
	barcodeNameThreshold = 30

	leadingFactor = 1.2
	pointsPerIn   = 72.0
)

const (
	fontFamily    = "Helvetica"
	codeImageName = "code"
)

// Sentinel errors for the rendering stage.
var (
	// ErrBackend indicates a failure inside the PDF composition backend.
	ErrBackend = errors.New("rendering backend failure")

	// ErrPreviewUnavailable indicates the preview raster could not be
	// produced. The sealed document is still usable without it.
	ErrPreviewUnavailable = errors.New("preview unavailable")
)

// rect is a placement region on the page, in inches from the top-left corner.
type rect struct {
	x, y, w, h float64
}

// Template is one fixed label layout: where the code image sits, where the
// display name flows, and how the font fitting search starts.
type Template struct {
	name      string
	code      rect
	text      rect
	align     string // fpdf horizontal alignment, "L" or "C"
	startFont func(name string) int
}

// Name identifies the template.
func (t Template) Name() string {
	return t.name
}

// TemplateQR places the QR code at the left edge and fits the name into the
// remaining width, left aligned.
var TemplateQR = Template{
	name: "qr",
	code: rect{x: paddingIn, y: paddingIn, w: qrSizeIn, h: qrSizeIn},
	text: rect{
		x: 2*paddingIn + qrSizeIn,
		y: paddingIn,
		w: PageWidthIn - (2*paddingIn + qrSizeIn) - paddingIn,
		h: PageHeightIn - 2*paddingIn,
	},
	align:     "L",
	startFont: func(string) int { return qrMaxFontSize },
}

// TemplateBarcode centers a Code-128 strip across the top of the page with the
// name below it, center aligned.
var TemplateBarcode = Template{
	name: "barcode",
	code: rect{x: (PageWidthIn - barcodeWidthIn) / 2, y: paddingIn, w: barcodeWidthIn, h: barcodeHeightIn},
	text: rect{
		x: paddingIn,
		y: 2*paddingIn + barcodeHeightIn,
		w: PageWidthIn - 2*paddingIn,
		h: PageHeightIn - (2*paddingIn + barcodeHeightIn) - paddingIn,
	},
	align: "C",
	startFont: func(name string) int {
		if utf8.RuneCountInString(name) > barcodeNameThreshold {
			return barcodeLongNameFont
		}
		return barcodeShortNameFont
	},
}

// TextFit is the outcome of the font fitting search. FontSize is the largest
// size whose wrapped height stays inside the text region; when even the
// minimum overflows, Fits is false and the overflow is clipped at render time.
type TextFit struct {
	FontSize int
	Height   float64 // wrapped text height at FontSize, in inches
	Fits     bool
}

// Document is a sealed single-page label PDF together with the placement plan
// its preview is rendered from.
type Document struct {
	PDF        []byte
	PageWidth  float64
	PageHeight float64
	Fit        TextFit

	plan placementPlan
}

// placementPlan captures everything the rasterizer needs to redraw the page:
// the code image and its region, the wrapped lines and their metrics.
type placementPlan struct {
	template  Template
	codePNG   []byte
	lines     []string
	fontSize  int
	lineHtIn  float64 // line advance in inches
	textTopIn float64 // top edge of the vertically centered block
}

// Engine composes label documents and rasterizes their previews.
type Engine struct{}

// NewEngine creates a new render engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compose lays out one label page: the code image in its reserved region and
// the display name auto-fitted, vertically centered and clipped to the text
// region. Text overflow never fails composition, only backend errors do.
func (e *Engine) Compose(t Template, name string, codePNG []byte) (*Document, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: PageWidthIn, Ht: PageHeightIn},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(codeImageName, opts, bytes.NewReader(codePNG))
	pdf.ImageOptions(codeImageName, t.code.x, t.code.y, t.code.w, t.code.h, false, opts, 0, "")
	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrBackend, pdf.Error())
	}

	fit, lines := fitText(pdf, t, name)
	lineHt := leadingIn(fit.FontSize)

	slack := t.text.h - fit.Height
	if slack < 0 {
		slack = 0
	}
	textTop := t.text.y + slack/2

	pdf.SetFont(fontFamily, "B", float64(fit.FontSize))
	pdf.ClipRect(t.text.x, t.text.y, t.text.w, t.text.h, false)
	for i, line := range lines {
		pdf.SetXY(t.text.x, textTop+float64(i)*lineHt)
		pdf.CellFormat(t.text.w, lineHt, line, "", 0, t.align, false, 0, "")
	}
	pdf.ClipEnd()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	return &Document{
		PDF:        buf.Bytes(),
		PageWidth:  PageWidthIn,
		PageHeight: PageHeightIn,
		Fit:        fit,
		plan: placementPlan{
			template:  t,
			codePNG:   codePNG,
			lines:     lines,
			fontSize:  fit.FontSize,
			lineHtIn:  lineHt,
			textTopIn: textTop,
		},
	}, nil
}

// fitText searches downward from the template's starting size for the largest
// font whose wrapped height fits the text region. When nothing fits, the
// minimum size is kept with Fits false.
func fitText(pdf *fpdf.Fpdf, t Template, name string) (TextFit, []string) {
	var lines []string
	var height float64

	for size := t.startFont(name); size >= minFontSize; size-- {
		pdf.SetFont(fontFamily, "B", float64(size))
		lines = pdf.SplitText(name, t.text.w)
		height = float64(len(lines)) * leadingIn(size)
		if height <= t.text.h {
			return TextFit{FontSize: size, Height: height, Fits: true}, lines
		}
	}

	return TextFit{FontSize: minFontSize, Height: height, Fits: false}, lines
}

// leadingIn converts a font size in points to its line advance in inches.
func leadingIn(fontSize int) float64 {
	return float64(fontSize) * leadingFactor / pointsPerIn
}
