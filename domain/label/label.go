package label

import (
	"fmt"
	"time"

	"github.com/prasetyowira/mxlabel/infrastructure/render"
)

// Variant selects which of the two label templates is generated.
type Variant string

// Supported label variants
const (
	VariantQR      Variant = "qr"
	VariantBarcode Variant = "barcode"
)

// ParseVariant maps the wire form of a variant to its typed form. The empty
// string selects the QR template.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", string(VariantQR):
		return VariantQR, nil
	case string(VariantBarcode):
		return VariantBarcode, nil
	}
	return "", fmt.Errorf("%w: unknown variant %q", ErrInvalidInput, s)
}

// Label is the result of one generation: the sealed PDF document, its
// download filename and, when rasterization succeeded, a PNG preview.
type Label struct {
	Document    *render.Document
	Filename    string
	Preview     []byte
	FontSize    int
	ContentFits bool
}

// JournalEntry records one completed label generation. Only metadata is
// journaled; document and preview bytes never persist.
type JournalEntry struct {
	ID         uint
	Kind       Kind
	ResourceID string
	Name       string
	Variant    Variant
	Filename   string
	FontSize   int
	CreatedAt  time.Time
}
