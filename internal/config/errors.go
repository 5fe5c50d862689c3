package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoEndpoint is returned when the analyze endpoint is empty.
	ErrNoEndpoint = errors.New("no endpoint specified: set --endpoint or endpoint in the config file")

	// ErrInvalidEndpoint is returned when the endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Zero disables the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is not positive.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be positive")

	// ErrUnsupportedLanguage is returned for a notification language
	// without a message catalog.
	ErrUnsupportedLanguage = errors.New("unsupported language: use en or tr")

	// ErrInvalidParallel is returned when the parallelism is not positive.
	ErrInvalidParallel = errors.New("invalid parallel: must be positive")

	// ErrInvalidSessionTTL is returned when the session TTL is not positive.
	ErrInvalidSessionTTL = errors.New("invalid session ttl: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
