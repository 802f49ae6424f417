package openweather

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned before any network call is attempted.
	ErrMissingAPIKey = errors.New("openweather api key is not configured")

	// ErrInvalidAPIKey maps HTTP 401 responses.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrLocationNotFound maps HTTP 404 responses and empty geocoding matches.
	ErrLocationNotFound = errors.New("location not found")
)

// StatusError covers non-2xx responses that are neither auth nor not-found.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed (%d)", e.Code)
}

// statusToError normalizes a non-2xx HTTP status into a typed error.
func statusToError(code int) error {
	switch code {
	case 401:
		return ErrInvalidAPIKey
	case 404:
		return ErrLocationNotFound
	default:
		return &StatusError{Code: code}
	}
}
