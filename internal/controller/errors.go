package controller

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// AuthenticationError indicates the controller rejected the login or could
// not be reached while logging in.
type AuthenticationError struct {
	// Endpoint is the login URL.
	Endpoint string
	// StatusCode is the HTTP status returned, or 0 if no response arrived.
	StatusCode int
	// Reason is the underlying error.
	Reason error
}

// Error returns a user-facing description of the login failure.
func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("login to %s failed (HTTP %d): %v", e.Endpoint, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("login to %s failed: %v", e.Endpoint, e.Reason)
}

// Unwrap returns the underlying error.
func (e *AuthenticationError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthenticationError) Is(target error) bool {
	_, ok := target.(*AuthenticationError)
	return ok
}

// TransportError indicates a network failure, timeout, or non-2xx status on
// a resource fetch.
type TransportError struct {
	// Endpoint is the URL that was requested.
	Endpoint string
	// StatusCode is the HTTP status returned, or 0 if no response arrived.
	StatusCode int
	// Message is the controller's `meta.msg`, if it sent one.
	Message string
	// Reason is the underlying network error, if any.
	Reason error
}

// Error returns a user-facing description of the failed request.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("request to %s failed: HTTP %d %s (%s)", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("request to %s failed: HTTP %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
	default:
		return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Reason)
	}
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// Timeout reports whether the request failed because its deadline passed.
func (e *TransportError) Timeout() bool {
	for err := e.Reason; err != nil; err = errors.Unwrap(err) {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return true
		}
	}
	return e.Reason != nil && strings.Contains(e.Reason.Error(), "deadline exceeded")
}

// ProtocolError indicates the controller answered with a body that does not
// have the expected shape.
type ProtocolError struct {
	// Endpoint is the URL that returned the body.
	Endpoint string
	// Reason describes the mismatch.
	Reason error
}

// Error returns a user-facing description of the malformed response.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unexpected response from %s: %v", e.Endpoint, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *ProtocolError) Is(target error) bool {
	_, ok := target.(*ProtocolError)
	return ok
}

// Kinds of lookups that can fail with a NotFoundError.
const (
	KindSite = "site"
	KindWLAN = "WLAN"
)

// NotFoundError indicates a site or WLAN name had no match. Available lists
// every valid alternative so the user can correct the input.
type NotFoundError struct {
	Kind      string
	Name      string
	Available []string
}

// Error returns the failed name together with the available alternatives.
func (e *NotFoundError) Error() string {
	available := "(none)"
	if len(e.Available) > 0 {
		available = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("%s '%s' not found. Available: %s", e.Kind, e.Name, available)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// NotAuthenticatedError is returned when a resource is requested before a
// successful Login.
type NotAuthenticatedError struct{}

// Error returns a message telling the caller to log in first.
func (e *NotAuthenticatedError) Error() string {
	return "not authenticated: call Login before fetching resources"
}

// Is allows errors.Is() to work with wrapped errors.
func (e *NotAuthenticatedError) Is(target error) bool {
	_, ok := target.(*NotAuthenticatedError)
	return ok
}
