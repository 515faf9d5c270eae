package logclient

import (
	"errors"
	"fmt"
)

// Kind classifies log-delivery failures. The taxonomy is terminal-local:
// callers log it to the diagnostic channel and move on, it never reaches the
// purchase flow.
type Kind string

const (
	KindInvalidURL       Kind = "invalid_url"
	KindNoResponse       Kind = "no_response"
	KindUnauthorized     Kind = "unauthorized"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindDecodeFailure    Kind = "decode_failure"
	KindUnexpectedStatus Kind = "unexpected_status"
	KindUnknown          Kind = "unknown"
)

// Error is a log-delivery failure tagged with its taxonomy kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("logclient: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("logclient: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns a short human-readable description of the failure.
func (e *Error) Message() string {
	switch e.Kind {
	case KindUnauthorized:
		return "Session expired"
	case KindNotFound:
		return "Endpoint not found"
	case KindConflict:
		return "Conflicting record"
	case KindDecodeFailure:
		return "Decode error"
	case KindNoResponse:
		return "No response from server"
	case KindInvalidURL:
		return "Invalid endpoint URL"
	default:
		return "Unknown error"
	}
}

// KindOf extracts the taxonomy kind from an error, defaulting to KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
