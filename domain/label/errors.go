package label

import (
	"errors"
	"fmt"
)

// Sentinel errors for the label generation pipeline. Callers match them with
// errors.Is; stages wrap their cause so the underlying failure stays visible.
var (
	// ErrInvalidInput indicates a resource URL or variant that cannot be
	// turned into a generation request.
	ErrInvalidInput = errors.New("invalid resource URL")

	// ErrMalformedResponse indicates an upstream success body that is not
	// the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrEmptyPayload indicates an empty code value handed to the symbology
	// generator.
	ErrEmptyPayload = errors.New("code value is empty")

	// ErrUnencodable indicates a code value outside the symbology's
	// character set or capacity.
	ErrUnencodable = errors.New("code value cannot be encoded")
)

// UpstreamError describes a failed MaintainX API call. StatusCode is zero when
// the request never produced an HTTP response, such as a network failure or a
// timeout.
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("maintainx request failed: %v", e.Err)
	}
	return fmt.Sprintf("maintainx returned status %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
