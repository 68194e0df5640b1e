package label

import (
	"fmt"
	"strings"
	"unicode"
)

// Labels generated from the barcode template share one filename prefix
// regardless of resource kind.
const barcodeFilenamePrefix = "MX_Label"

// SanitizeName reduces a display name to filesystem-safe characters. Letters,
// digits, underscores and hyphens are kept, trailing spaces are dropped and
// the remaining spaces become underscores. The result is stable under
// repeated application.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimRight(b.String(), " ")
	return strings.ReplaceAll(safe, " ", "_")
}

// BuildFilename derives the download filename for a generated label. The QR
// template uses the resource kind's prefix, the barcode template a shared
// one. A name that sanitizes to nothing is dropped from the pattern.
func BuildFilename(variant Variant, ref ResourceReference, name string, fontSize int) string {
	prefix := ref.Kind.FilenamePrefix()
	if variant == VariantBarcode {
		prefix = barcodeFilenamePrefix
	}

	safe := SanitizeName(name)
	if safe == "" {
		return fmt.Sprintf("%s_%s_fs%d.pdf", prefix, ref.ID, fontSize)
	}
	return fmt.Sprintf("%s_%s_%s_fs%d.pdf", prefix, ref.ID, safe, fontSize)
}
