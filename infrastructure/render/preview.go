package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// PreviewDPI is the fixed raster resolution for label previews.
const PreviewDPI = 150

var (
	previewFontOnce sync.Once
	previewFont     *opentype.Font
	previewFontErr  error
)

// Preview renders the document's single page to a PNG at PreviewDPI by
// replaying the placement plan captured at composition time. Failures are
// reported as ErrPreviewUnavailable; the caller decides whether to continue
// without a preview.
func (e *Engine) Preview(doc *Document) ([]byte, error) {
	p := doc.plan

	img := image.NewNRGBA(image.Rect(0, 0, px(doc.PageWidth), px(doc.PageHeight)))
	xdraw.Draw(img, img.Bounds(), image.White, image.Point{}, xdraw.Src)

	code, err := png.Decode(bytes.NewReader(p.codePNG))
	if err != nil {
		return nil, fmt.Errorf("%w: decode code image: %v", ErrPreviewUnavailable, err)
	}
	// Nearest neighbor keeps QR modules and barcode bars crisp.
	codeRect := image.Rect(
		px(p.template.code.x), px(p.template.code.y),
		px(p.template.code.x+p.template.code.w), px(p.template.code.y+p.template.code.h),
	)
	xdraw.NearestNeighbor.Scale(img, codeRect, code, code.Bounds(), xdraw.Src, nil)

	face, err := previewFace(p.fontSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreviewUnavailable, err)
	}
	defer face.Close()

	textRect := image.Rect(
		px(p.template.text.x), px(p.template.text.y),
		px(p.template.text.x+p.template.text.w), px(p.template.text.y+p.template.text.h),
	)
	clipped := img.SubImage(textRect).(*image.NRGBA)

	ascent := face.Metrics().Ascent.Ceil()
	drawer := &font.Drawer{Dst: clipped, Src: image.Black, Face: face}
	for i, line := range p.lines {
		x := textRect.Min.X
		if p.template.align == "C" {
			if pad := (textRect.Dx() - drawer.MeasureString(line).Ceil()) / 2; pad > 0 {
				x += pad
			}
		}
		y := px(p.textTopIn) + ascent + int(math.Round(float64(i)*p.lineHtIn*PreviewDPI))
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encode preview: %v", ErrPreviewUnavailable, err)
	}
	return buf.Bytes(), nil
}

// previewFace returns a face for the embedded bold font at the given point
// size, scaled for PreviewDPI. The parsed font is shared across calls.
func previewFace(fontSize int) (font.Face, error) {
	previewFontOnce.Do(func() {
		previewFont, previewFontErr = opentype.Parse(gobold.TTF)
	})
	if previewFontErr != nil {
		return nil, previewFontErr
	}
	return opentype.NewFace(previewFont, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     PreviewDPI,
		Hinting: font.HintingFull,
	})
}

// px converts inches to preview pixels.
func px(in float64) int {
	return int(math.Round(in * PreviewDPI))
}
