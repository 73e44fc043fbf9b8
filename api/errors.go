package api

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultErrorMessage is used when a failed response carries no message.
const DefaultErrorMessage = "Something went wrong"

// ErrInvalidConfig indicates invalid client configuration
var ErrInvalidConfig = errors.New("invalid api client configuration")

// RequestError is returned when the backend answers with a non-success status.
type RequestError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface. It returns the backend message so it
// can be shown to the user as-is.
func (e *RequestError) Error() string {
	return e.Message
}

// IsNotFound checks if the error indicates a not found response
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *RequestError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// NetworkError indicates the request never produced a response.
type NetworkError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a success payload that could not be parsed.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is a RequestError for a 401/403 response.
func IsUnauthorized(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.IsUnauthorized()
}
