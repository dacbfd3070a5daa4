package catalog

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrEmptyBody is returned when the API answers 200 with no payload.
	// It is highly unlikely to get an empty document without an error
	// status, but the live service has been observed doing it.
	ErrEmptyBody = errors.New("empty response body")
)

// ErrorClass represents a classification of fetch errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors (not-found, forbidden).
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// APIError represents a classified failure of one catalog request.
// Within a search every APIError is permanent: failed documents go to
// the bad set and are not retried.
type APIError struct {
	StatusCode int
	Class      ErrorClass
	URL        string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s error (status %d) for %s: %v",
			e.Class, e.StatusCode, e.URL, e.Err)
	}
	return fmt.Sprintf("catalog %s error (status %d) for %s",
		e.Class, e.StatusCode, e.URL)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to an error class.
func classifyStatus(status int) ErrorClass {
	switch {
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ErrorClassNetwork
	}
}
