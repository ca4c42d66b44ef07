package llm

import "errors"

var (
	// ErrNotConfigured indicates no completion provider is set up, usually
	// because no API key was supplied. Callers switch to offline planning.
	ErrNotConfigured = errors.New("llm provider not configured")

	// ErrUnknownProvider indicates the configured provider name is not supported.
	ErrUnknownProvider = errors.New("unknown llm provider")

	// ErrUnavailable indicates the provider could not be reached.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrEmptyCompletion indicates the provider answered without any text.
	ErrEmptyCompletion = errors.New("llm returned an empty completion")

	// ErrInvalidOutput indicates the response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)
