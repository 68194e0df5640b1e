package label

import (
	"fmt"
	"strings"
)

// Kind identifies which MaintainX resource a label is generated for.
type Kind string

// Supported resource kinds
const (
	KindPart     Kind = "part"
	KindLocation Kind = "location"
)

// PathSegment returns the plural API path segment for the kind.
func (k Kind) PathSegment() string {
	if k == KindLocation {
		return "locations"
	}
	return "parts"
}

// ResponseKey returns the JSON envelope key the API wraps the record in.
func (k Kind) ResponseKey() string {
	if k == KindLocation {
		return "location"
	}
	return "part"
}

// FilenamePrefix returns the filename prefix used by the QR template.
func (k Kind) FilenamePrefix() string {
	if k == KindLocation {
		return "LOC"
	}
	return "QR"
}

// ResourceReference identifies one upstream record: a resource kind plus its
// numeric identifier. Valid references come only from ParseResourceURL.
type ResourceReference struct {
	Kind Kind
	ID   string
}

// ParseResourceURL extracts a ResourceReference from a MaintainX resource URL.
// The last path segment must be the numeric record identifier; trailing
// slashes are ignored. A "/locations/" segment anywhere in the URL selects the
// location kind, everything else is treated as a part.
func ParseResourceURL(rawURL string) (ResourceReference, error) {
	if rawURL == "" || !strings.Contains(rawURL, "/") {
		return ResourceReference{}, fmt.Errorf("%w: %q", ErrInvalidInput, rawURL)
	}

	trimmed := strings.TrimRight(rawURL, "/")
	segments := strings.Split(trimmed, "/")
	id := segments[len(segments)-1]
	if !isDigits(id) {
		return ResourceReference{}, fmt.Errorf("%w: no numeric identifier in %q", ErrInvalidInput, rawURL)
	}

	kind := KindPart
	if strings.Contains(rawURL, "/locations/") {
		kind = KindLocation
	}

	return ResourceReference{Kind: kind, ID: id}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
