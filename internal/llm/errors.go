package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey means no API key was supplied and the environment does
// not provide one.
var ErrMissingAPIKey = errors.New("gemini api key is not set")

// CredentialsError reports a 401 or 403 from the inference service.
type CredentialsError struct {
	StatusCode int
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials: service returned status %d", e.StatusCode)
}

// APIError reports any other non-2xx status. Body holds a snippet of the
// response for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

// NetworkError wraps transport-level failures, timeouts included.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UnexpectedResponseError reports a 2xx response whose body does not carry
// the expected candidate structure.
type UnexpectedResponseError struct {
	Reason string
	Body   string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected response: %s", e.Reason)
}
