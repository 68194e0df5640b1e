package label

import "strings"

// DefaultName is rendered when the upstream record has no usable display name.
const DefaultName = "N/A"

// Record is the normalized label content fetched from the upstream API.
// CodeValue is never empty: when the record carries no barcode value it falls
// back to the resource identifier.
type Record struct {
	Name      string
	CodeValue string
}

// NewRecord normalizes raw upstream fields into a Record, using ref as the
// fallback source for the code value.
func NewRecord(ref ResourceReference, name, codeValue string) Record {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	if codeValue == "" {
		codeValue = ref.ID
	}
	return Record{Name: name, CodeValue: codeValue}
}
