package upstream

import (
	"errors"
	"fmt"
)

// Kind classifies why an upstream call failed.
type Kind int

const (
	// KindUnavailable covers network errors, timeouts, cancellation and non-2xx statuses.
	KindUnavailable Kind = iota + 1
	// KindMalformed covers empty or unparseable bodies and missing expected fields.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is returned by every failed upstream call.
type Error struct {
	Upstream   string
	Kind       Kind
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s (status %d): %v", e.Upstream, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Upstream, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Unavailable builds a KindUnavailable error for the named upstream.
func Unavailable(name string, status int, err error) *Error {
	return &Error{Upstream: name, Kind: KindUnavailable, StatusCode: status, Err: err}
}

// Malformed builds a KindMalformed error for the named upstream.
func Malformed(name string, err error) *Error {
	return &Error{Upstream: name, Kind: KindMalformed, Err: err}
}

// IsUnavailable reports whether err is an upstream availability failure.
func IsUnavailable(err error) bool {
	return kindOf(err) == KindUnavailable
}

// IsMalformed reports whether err is an upstream payload failure.
func IsMalformed(err error) bool {
	return kindOf(err) == KindMalformed
}

func kindOf(err error) Kind {
	var upErr *Error
	if errors.As(err, &upErr) {
		return upErr.Kind
	}
	return 0
}
