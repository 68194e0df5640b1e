// Package symbology renders machine readable code images for labels: QR
// matrices for the QR template and Code-128 strips for the barcode template.
// Everything is produced in memory, nothing touches the filesystem.
package symbology

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"

	"github.com/prasetyowira/mxlabel/domain/label"
)

// QR codes are emitted at a fixed scale per module, with the library's
// standard four-module quiet zone.
const qrModuleScale = 10

// Code-128 strips are scaled to a fixed raster matching the barcode
// template's 2.4"x0.45" image region.
const (
	code128Width  = 480
	code128Height = 90
)

// Generator produces code images for label composition.
type Generator struct{}

// NewGenerator creates a new code image generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// QRCode encodes value verbatim as a QR code PNG at recovery level Low, using
// the smallest symbol version the payload fits in.
func (g *Generator) QRCode(value string) ([]byte, error) {
	if value == "" {
		return nil, label.ErrEmptyPayload
	}

	// A negative size selects a fixed number of pixels per module instead
	// of a fixed image size.
	data, err := qrcode.Encode(value, qrcode.Low, -qrModuleScale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", label.ErrUnencodable, err)
	}
	return data, nil
}

// Code128 encodes value as a Code-128 strip PNG. Values outside the Code-128
// symbol set, or too long for a single strip, cannot be encoded.
func (g *Generator) Code128(value string) ([]byte, error) {
	if value == "" {
		return nil, label.ErrEmptyPayload
	}

	bc, err := code128.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", label.ErrUnencodable, err)
	}

	scaled, err := barcode.Scale(bc, code128Width, code128Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", label.ErrUnencodable, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode barcode image: %w", err)
	}
	return buf.Bytes(), nil
}
