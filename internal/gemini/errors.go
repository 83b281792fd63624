package gemini

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no API key is set. Callers treat this
// as a signal to serve fallback content, never as a hard failure.
var ErrNotConfigured = errors.New("GEMINI_API_KEY not configured")

// UpstreamError reports a failed call to the generative language endpoint:
// either a non-success HTTP status or a transport failure (including
// timeout, in which case StatusCode is 0). Body carries the upstream
// payload verbatim.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("gemini API unreachable: %s", e.Body)
	}
	return fmt.Sprintf("gemini API error (status %d): %s", e.StatusCode, e.Body)
}

// MalformedResponseError reports a success response whose shape does not
// contain the expected completion text.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "unexpected response format: " + e.Reason
}

// ParseError reports completion text that is not valid JSON after fence
// stripping.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "generated content is not valid JSON: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
