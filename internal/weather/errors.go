package weather

import (
	"errors"
	"fmt"
)

// Kind classifies an upstream failure into a user-facing category.
type Kind string

const (
	KindNotFound     Kind = "not_found"    // 404: city unknown
	KindUnauthorized Kind = "unauthorized" // 401: credential problem
	KindRateLimited  Kind = "rate_limited" // 429: too many requests
	KindUpstream     Kind = "upstream"     // any other non-2xx response
	KindNetwork      Kind = "network"      // no HTTP response at all
	KindUnexpected   Kind = "unexpected"   // failure outside the HTTP path
)

// Error is a classified upstream failure. City is the searched city name;
// Status is the upstream HTTP status, zero when no response was received.
type Error struct {
	Kind   Kind
	City   string
	Status int
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("weather %s (city %q): %v", e.Kind, e.City, e.cause)
	}
	return fmt.Sprintf("weather %s (city %q): status %d", e.Kind, e.City, e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// Message is the user-facing description. It distinguishes a misspelled
// city from a service outage from rate limiting, and never includes
// credentials or raw upstream payloads.
func (e *Error) Message() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("City %q not found. Please check the spelling and try again.", e.City)
	case KindUnauthorized:
		return "API key is invalid or missing."
	case KindRateLimited:
		return "Too many requests. Please try again later."
	case KindNetwork:
		return "Network error. Please check your connection and try again."
	case KindUnexpected:
		return "An unexpected error occurred. Please try again."
	default:
		return "Failed to fetch weather data. Please try again."
	}
}

// classifyStatus maps an upstream HTTP status to an *Error for the given city.
func classifyStatus(city string, status int) *Error {
	kind := KindUpstream
	switch status {
	case 404:
		kind = KindNotFound
	case 401:
		kind = KindUnauthorized
	case 429:
		kind = KindRateLimited
	}
	return &Error{Kind: kind, City: city, Status: status}
}

// Classify wraps err as a classified *Error. Errors already classified pass
// through unchanged; transport errors (no HTTP response) become KindNetwork.
func Classify(city string, err error) *Error {
	var werr *Error
	if errors.As(err, &werr) {
		return werr
	}
	return &Error{Kind: KindNetwork, City: city, cause: err}
}
