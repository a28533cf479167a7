package vision

import "errors"

var (
	// ErrUnavailable indicates the vision endpoint is unreachable.
	ErrUnavailable = errors.New("vision endpoint unavailable")

	// ErrTimeout indicates the classification request exceeded the
	// configured timeout.
	ErrTimeout = errors.New("classification request timed out")

	// ErrInvalidOutput indicates the endpoint response could not be parsed.
	ErrInvalidOutput = errors.New("invalid classification response")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("classification retry attempts exhausted")
)
