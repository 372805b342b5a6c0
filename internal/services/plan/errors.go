package plan

import "errors"

var (
	ErrNotConfigured   = errors.New("text generation credential is not configured")
	ErrUpstreamCall    = errors.New("text generation request failed")
	ErrMalformedOutput = errors.New("text generation returned an unusable plan")
)

// failureReason maps a generation error to the label used in logs and metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, ErrMalformedOutput):
		return "malformed_output"
	case errors.Is(err, ErrUpstreamCall):
		return "upstream_error"
	default:
		return "unknown"
	}
}
