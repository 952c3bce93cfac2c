package fireflies

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies a failed operation so callers can map it onto the
// JSON-RPC error space of the MCP dispatch boundary.
type ErrorKind string

const (
	KindUnauthorized   ErrorKind = "unauthorized"
	KindNotFound       ErrorKind = "not_found"
	KindInvalidParams  ErrorKind = "invalid_params"
	KindTimeout        ErrorKind = "timeout"
	KindInternal       ErrorKind = "internal"
	KindMethodNotFound ErrorKind = "method_not_found"
)

// ErrNoSummary is wrapped into the InvalidParams error returned when a
// transcript has no summary record at all. The tool layer uses it to decide
// whether to render a friendly explanation instead of an error.
var ErrNoSummary = errors.New("transcript has no summary")

// Error is the structured failure type for all backend operations.
// It carries a classification kind and a human-readable message, and
// optionally wraps the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError creates an Error with a formatted message.
func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is (or wraps) an Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// classifyStatus maps a non-2xx HTTP response onto the error taxonomy.
func classifyStatus(status int, body string) *Error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(KindUnauthorized, "backend rejected the API key (HTTP %d)", status)
	case http.StatusNotFound:
		return newError(KindNotFound, "backend endpoint not found (HTTP %d)", status)
	case http.StatusBadRequest:
		return newError(KindInvalidParams, "backend rejected the request (HTTP %d): %s", status, body)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return newError(KindTimeout, "backend request timed out (HTTP %d)", status)
	default:
		return newError(KindInternal, "unexpected backend response (HTTP %d): %s", status, body)
	}
}

// classifyTransport maps a transport-level failure onto the error taxonomy.
// Deadline and net timeouts classify as Timeout; everything else is Internal
// wrapping the underlying message.
func classifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "backend request exceeded the deadline", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "backend request timed out", Err: err}
	}
	return &Error{Kind: KindInternal, Message: "backend request failed", Err: err}
}
