package rest

import (
	"context"
	"errors"
	"fmt"
)

// ErrAuthorization is returned when the passport registry keeps
// answering 401 after the token has been refreshed and the request has
// been retried once.
var ErrAuthorization = errors.New("authorization rejected by registry")

// RemoteError is returned when a registry does not answer a request
// successfully: a non-2xx response, a transport failure or expiry of
// the per-request timeout.
type RemoteError struct {
	// Op tells what was being done, like "creating population".
	Op string

	// Status is the HTTP status code. Zero when no response arrived.
	Status int

	// Body is the response body, when a response arrived.
	Body []byte

	// Cause is the transport failure, when no response arrived.
	Cause error
}

func (e *RemoteError) Error() string {
	if e.Cause != nil {
		if e.Timeout() {
			return fmt.Sprintf("%s: request timed out: %s", e.Op, e.Cause)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Cause)
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s: %s (status code = %d)", e.Op, StatusCodeRangeOf(e.Status), e.Status)
	}
	return fmt.Sprintf("%s: %s (status code = %d): %s", e.Op, StatusCodeRangeOf(e.Status), e.Status, e.Body)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the request failed by expiry of the
// per-request timeout.
func (e *RemoteError) Timeout() bool {
	if e.Cause == nil {
		return false
	}
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	if errors.As(e.Cause, &timeout) {
		return timeout.Timeout()
	}
	return false
}

type StatusCodeRange int

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

func (sc StatusCodeRange) String() string {
	switch sc {
	case Status1xx:
		return "informational response"
	case Status2xx:
		return "success"
	case Status3xx:
		return "redirect"
	case Status4xx:
		return "client error"
	case Status5xx:
		return "server error"
	default:
		return fmt.Sprintf("unknown (%d)", sc)
	}
}

func StatusCodeRangeOf(statusCode int) StatusCodeRange {
	if statusCode < 100 {
		return StatusUnknown
	}
	if statusCode < 200 {
		return Status1xx
	}
	if statusCode < 300 {
		return Status2xx
	}
	if statusCode < 400 {
		return Status3xx
	}
	if statusCode < 500 {
		return Status4xx
	}
	if statusCode < 600 {
		return Status5xx
	}
	return StatusUnknown
}
