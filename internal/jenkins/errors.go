package jenkins

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/muurk/jenkins-users/internal/urls"
)

// ErrorKind is the category of a failed request
type ErrorKind int

const (
	// KindNetwork is a transport failure that fits no narrower kind
	KindNetwork ErrorKind = iota
	// KindTimeout means the server did not answer in time
	KindTimeout
	// KindConnectionRefused means nothing is listening at the server address
	KindConnectionRefused
	// KindDNS means the server hostname did not resolve
	KindDNS
	// KindUnreachable means the host or its network is unreachable
	KindUnreachable
	// KindAuth means the credentials were refused (401) or lack permission (403)
	KindAuth
	// KindHTTP means any other non-200 status code
	KindHTTP
	// KindParse means a 200 response whose body could not be decoded
	KindParse
	// KindRejected means a 200 response that carries a Jenkins form error
	KindRejected
	// KindUnavailable means the circuit breaker is open after repeated failures
	KindUnavailable
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindTimeout:
		return "Timeout"
	case KindConnectionRefused:
		return "Connection Refused"
	case KindDNS:
		return "DNS Error"
	case KindUnreachable:
		return "Unreachable"
	case KindAuth:
		return "Authentication Error"
	case KindHTTP:
		return "HTTP Error"
	case KindParse:
		return "Parse Error"
	case KindRejected:
		return "Rejected"
	case KindUnavailable:
		return "Unavailable"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// ValidationError reports input that was rejected before any request was made.
type ValidationError struct {
	Message string   // User-facing message
	Fields  []string // Names of the missing or invalid fields
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (missing: %s)", e.Message, strings.Join(e.Fields, ", "))
}

// NewValidationError creates a validation error
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// RequestError reports anything that went wrong after a request was dispatched,
// from a refused connection to a 200 page that carries a form error.
type RequestError struct {
	Kind       ErrorKind
	Op         string // e.g. "create user"
	Subject    string // Username the operation targeted, if any
	Message    string
	StatusCode int   // HTTP status code, 0 for transport failures
	Err        error // Underlying error, if any
}

// Error implements the error interface
func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Subject != "" {
		fmt.Fprintf(&b, " '%s'", e.Subject)
	}
	fmt.Fprintf(&b, ": %s: %s", e.Kind, e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain inspection
func (e *RequestError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError turns a transport error from http.Client.Do into a
// RequestError with the narrowest matching kind.
func ClassifyNetworkError(op, subject string, err error) *RequestError {
	if err == nil {
		return nil
	}

	re := &RequestError{
		Kind:    KindNetwork,
		Op:      op,
		Subject: subject,
		Message: "network error occurred",
		Err:     err,
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError

	switch {
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		re.Kind = KindTimeout
		re.Message = "request timed out"
	case errors.As(err, &dnsErr):
		re.Kind = KindDNS
		re.Message = fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name)
	case errors.Is(err, syscall.ECONNREFUSED):
		re.Kind = KindConnectionRefused
		re.Message = "server refused connection"
	case errors.Is(err, syscall.EHOSTUNREACH):
		re.Kind = KindUnreachable
		re.Message = "host unreachable"
	case errors.Is(err, syscall.ENETUNREACH):
		re.Kind = KindUnreachable
		re.Message = "network unreachable"
	case errors.As(err, &opErr):
		re.Message = fmt.Sprintf("%s failed", opErr.Op)
	}

	return re
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// NewNetworkError wraps a transport failure, keeping the classified kind
func NewNetworkError(op, subject, message string, err error) *RequestError {
	re := ClassifyNetworkError(op, subject, err)
	if re == nil {
		re = &RequestError{Kind: KindNetwork, Op: op, Subject: subject}
	}
	if re.Kind == KindNetwork {
		re.Message = message
	}
	return re
}

// NewAuthError creates an authentication error for a 401 or 403 response
func NewAuthError(op, subject string, statusCode int) *RequestError {
	message := "authentication failed (check username and API token)"
	if statusCode == http.StatusForbidden {
		message = "permission denied (account lacks the required permission)"
	}
	return &RequestError{
		Kind:       KindAuth,
		Op:         op,
		Subject:    subject,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewHTTPError creates an error for an unexpected status code
func NewHTTPError(op, subject string, statusCode int) *RequestError {
	return &RequestError{
		Kind:       KindHTTP,
		Op:         op,
		Subject:    subject,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
	}
}

// NewParseError creates an error for a response body that could not be decoded
func NewParseError(op, message string, err error) *RequestError {
	return &RequestError{
		Kind:       KindParse,
		Op:         op,
		Message:    message,
		StatusCode: http.StatusOK,
		Err:        err,
	}
}

// NewRejectedError creates an error for a 200 response carrying a form error
func NewRejectedError(op, subject, message string) *RequestError {
	return &RequestError{
		Kind:       KindRejected,
		Op:         op,
		Subject:    subject,
		Message:    message,
		StatusCode: http.StatusOK,
	}
}

// NewUnavailableError creates an error for a request short-circuited by the breaker
func NewUnavailableError(op, subject string, err error) *RequestError {
	return &RequestError{
		Kind:    KindUnavailable,
		Op:      op,
		Subject: subject,
		Message: "too many connection failures, requests paused",
		Err:     err,
	}
}

func asRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	ok := errors.As(err, &re)
	return re, ok
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRequestError checks if an error happened after dispatch
func IsRequestError(err error) bool {
	_, ok := asRequestError(err)
	return ok
}

// IsNetworkError checks if an error is connection-level (timeout, refused, DNS, ...)
func IsNetworkError(err error) bool {
	re, ok := asRequestError(err)
	if !ok {
		return false
	}
	switch re.Kind {
	case KindNetwork, KindTimeout, KindConnectionRefused, KindDNS, KindUnreachable, KindUnavailable:
		return true
	}
	return false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	re, ok := asRequestError(err)
	return ok && re.Kind == KindAuth
}

// IsHTTPError checks if an error is a non-200 status code
func IsHTTPError(err error) bool {
	re, ok := asRequestError(err)
	return ok && re.Kind == KindHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	re, ok := asRequestError(err)
	return ok && re.Kind == KindParse
}

// IsRejected checks if Jenkins answered 200 with a form error
func IsRejected(err error) bool {
	re, ok := asRequestError(err)
	return ok && re.Kind == KindRejected
}

// ShortMessage returns a concise, user-friendly cause for an error
func ShortMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	re, ok := asRequestError(err)
	if !ok {
		return err.Error()
	}

	switch re.Kind {
	case KindTimeout:
		return "Jenkins did not respond in time"
	case KindConnectionRefused:
		return "Connection refused - is Jenkins running?"
	case KindDNS:
		return "Cannot resolve Jenkins hostname"
	case KindUnreachable:
		return "Jenkins server unreachable - check network connection"
	case KindNetwork:
		return "Network error - check connection"
	case KindAuth:
		if re.StatusCode == http.StatusForbidden {
			return "Permission denied - account needs Administer"
		}
		return "Authentication failed - check username and API token"
	case KindHTTP:
		return fmt.Sprintf("Jenkins returned HTTP %d", re.StatusCode)
	case KindParse:
		return "Failed to parse Jenkins response"
	case KindRejected:
		return "Jenkins rejected the request: " + re.Message
	case KindUnavailable:
		return "Jenkins unavailable - too many failed connections, try again shortly"
	default:
		return re.Message
	}
}

// Troubleshooting returns user-facing advice for an error, one tip per line
func Troubleshooting(err error) []string {
	if IsValidationError(err) {
		return []string{"Fill in the required fields and try again"}
	}

	re, ok := asRequestError(err)
	if !ok {
		return nil
	}

	switch re.Kind {
	case KindTimeout:
		return []string{
			"Check that the Jenkins server is up and not overloaded",
			"Increase the request timeout with --timeout",
		}
	case KindConnectionRefused, KindUnreachable, KindNetwork:
		return []string{
			"Verify the server URL (scheme, host and port)",
			"Check that Jenkins is running and reachable from this machine",
			"If Jenkins sits behind a proxy, see " + urls.ReverseProxy,
		}
	case KindDNS:
		return []string{
			"Check the hostname in the server URL",
			"Try the server's IP address instead",
		}
	case KindAuth:
		return []string{
			"Use an API token, not the account password",
			"The account needs the Overall/Administer permission",
			"See " + urls.RemoteAccessAPI,
		}
	case KindHTTP:
		tips := []string{"Check the server logs for details"}
		if re.StatusCode == http.StatusNotFound {
			if re.Op == OpAssignRole {
				tips = append(tips, "Is the Role-based Authorization Strategy plugin installed? "+urls.RoleStrategyPlugin)
			} else {
				tips = append(tips, "Is Jenkins using its own user database? "+urls.ManagingSecurity)
			}
		}
		return tips
	case KindRejected:
		return []string{
			"Fix the value Jenkins complained about and try again",
			"The username may already exist",
		}
	case KindParse:
		return []string{"The server URL may point at something other than Jenkins"}
	case KindUnavailable:
		return []string{"Wait a few seconds, then check the server URL and connectivity"}
	}
	return nil
}
