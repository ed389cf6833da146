package errors

import "errors"

var (
	// ErrProviderUnavailable marks transport-level failures talking to an
	// external provider (network, timeout, non-2xx after retries).
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrInvalidProviderOutput marks generative output that could not be
	// parsed into the expected shape even after fallback parsing.
	ErrInvalidProviderOutput = errors.New("invalid provider output")
	// ErrContentGenerationFailed is the umbrella for explanation/answer
	// generation failures with no meaningful fallback.
	ErrContentGenerationFailed = errors.New("content generation failed")
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)
