package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"

	"unifimac/internal/controller"
)

// UsageError reports required settings that were not supplied by any flag,
// environment variable or config file.
type UsageError struct {
	// Missing holds the flag names, e.g. "--url".
	Missing []string
}

// Error returns the list of missing flags.
func (e *UsageError) Error() string {
	return "Missing required arguments: " + strings.Join(e.Missing, ", ")
}

// Is allows errors.Is() to work with wrapped errors.
func (e *UsageError) Is(target error) bool {
	_, ok := target.(*UsageError)
	return ok
}

// ConnectionErrorType categorizes why the controller could not be reached.
type ConnectionErrorType int

const (
	ConnectionErrorUnknown ConnectionErrorType = iota
	ConnectionErrorTLS
	ConnectionErrorNetwork
	ConnectionErrorTimeout
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError is a classified network failure.
type ConnectionError struct {
	Endpoint string
	Type     ConnectionErrorType
	Reason   error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s reaching %s: %v", e.Type, e.Endpoint, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// Hint returns a suggestion for fixing the failure, or "".
func (e *ConnectionError) Hint() string {
	switch e.Type {
	case ConnectionErrorTLS:
		return "the controller certificate could not be verified; drop --verify-ssl or set UNIFI_INSECURE=true for self-signed controllers"
	case ConnectionErrorDNS:
		return "check the host name in --url"
	case ConnectionErrorTimeout:
		return "the controller did not answer in time; raise --timeout or check the address"
	case ConnectionErrorNetwork:
		return "check that the controller is running and the port in --url is correct"
	default:
		return ""
	}
}

// ClassifyConnectionError inspects err and returns it as a ConnectionError.
// Returns nil for a nil error.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}

	ce := &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorUnknown, Reason: err}
	var dnsErr *net.DNSError
	switch {
	case isTLSError(err):
		ce.Type = ConnectionErrorTLS
	case errors.As(err, &dnsErr):
		ce.Type = ConnectionErrorDNS
	case isTimeoutError(err):
		ce.Type = ConnectionErrorTimeout
	case containsAny(err.Error(), networkKeywords):
		ce.Type = ConnectionErrorNetwork
	}
	return ce
}

var (
	tlsKeywords     = []string{"x509:", "certificate", "tls:", "TLS handshake"}
	networkKeywords = []string{"connection refused", "connection reset", "network is unreachable", "no route to host", "dial tcp", "connect:"}
)

func isTLSError(err error) bool {
	var certErr *x509.CertificateInvalidError
	var hostErr *x509.HostnameError
	var unknownAuthErr *x509.UnknownAuthorityError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) || errors.As(err, &unknownAuthErr) {
		return true
	}
	return containsAny(err.Error(), tlsKeywords)
}

func isTimeoutError(err error) bool {
	var te *controller.TransportError
	if errors.As(err, &te) && te.Timeout() {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// Describe returns the one-line message shown for err, with a hint appended
// for network failures that reached no controller response.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	if hint := connectionHint(err); hint != "" {
		msg += " (hint: " + hint + ")"
	}
	return msg
}

func connectionHint(err error) string {
	var authErr *controller.AuthenticationError
	if errors.As(err, &authErr) && authErr.StatusCode == 0 && authErr.Reason != nil {
		return ClassifyConnectionError(authErr.Reason, authErr.Endpoint).Hint()
	}
	var transportErr *controller.TransportError
	if errors.As(err, &transportErr) && transportErr.StatusCode == 0 && transportErr.Reason != nil {
		return ClassifyConnectionError(transportErr, transportErr.Endpoint).Hint()
	}
	return ""
}
