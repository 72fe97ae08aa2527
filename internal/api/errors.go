package api

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed matches transport failures and non-2xx responses.
	ErrRequestFailed = errors.New("api request failed")

	// ErrRejected matches application-level rejections carried inside a
	// successful HTTP response (success:false or error.message).
	ErrRejected = errors.New("api rejected request")

	// ErrInvalidResponse matches payloads that could not be decoded.
	ErrInvalidResponse = errors.New("invalid api response")

	// ErrNotAuthenticated is returned before any network call when a protected
	// endpoint is invoked without a token, and matches 401 responses.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Kind classifies an *Error.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindStatus
	KindRejected
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "TRANSPORT"
	case KindStatus:
		return "STATUS"
	case KindRejected:
		return "REJECTED"
	case KindDecode:
		return "DECODE"
	default:
		return "UNKNOWN"
	}
}

// Error is the uniform failure returned by every gateway call.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int    // 0 for transport failures
	Message    string // server-provided message, if any
	Err        error  // underlying cause
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	case KindRejected:
		return e.Message
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return e.Kind == KindTransport || e.Kind == KindStatus
	case ErrRejected:
		return e.Kind == KindRejected
	case ErrInvalidResponse:
		return e.Kind == KindDecode
	case ErrNotAuthenticated:
		return e.StatusCode == 401
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// RejectionMessage returns the server's message for an application-level
// rejection, or "" when err is not one.
func RejectionMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindRejected {
		return apiErr.Message
	}
	return ""
}
