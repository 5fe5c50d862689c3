package analyze

import (
	"errors"
	"fmt"
)

// Analyze client errors.
// Callers classify failures with errors.Is and errors.As.
var (
	// ErrInvalidEndpoint is returned by NewClient when the endpoint is not
	// an absolute http or https URL.
	ErrInvalidEndpoint = errors.New("invalid analyze endpoint: must be an absolute http or https URL")

	// ErrTransport wraps network-level failures: connection refused, DNS
	// errors, proxy failures, timeouts and context cancellation.
	ErrTransport = errors.New("analyze request failed")

	// ErrMalformedResponse is returned when the response body is not a JSON
	// object, exceeds the body size limit, or a success body lacks a string
	// summary.
	ErrMalformedResponse = errors.New("malformed analyze response")

	// ErrUnhealthy is returned by Health when the endpoint's health route
	// does not answer with a 2xx status.
	ErrUnhealthy = errors.New("analyze endpoint is unhealthy")
)

// APIError is an application error reported by the endpoint through a
// non-2xx status and an {"error": "..."} body.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the endpoint's error field. When the body has no string
	// error field, Message is the standard status text.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("analyze endpoint returned status %d: %s", e.StatusCode, e.Message)
}

// AsAPIError reports whether err is, or wraps, an *APIError and returns it.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
