package sapling

import (
	"errors"
	"fmt"
)

// Code classifies a sapling error.
type Code string

const (
	// CodeInvalidOperation marks a call the receiver's state does not allow,
	// such as writing a relative position on a node without a parent.
	CodeInvalidOperation Code = "INVALID_OPERATION"
	// CodeResourceUnavailable marks a surface that could not be created,
	// presented to, or released.
	CodeResourceUnavailable Code = "RESOURCE_UNAVAILABLE"
	// CodeMalformedAsset marks an image or font that is missing or cannot be decoded.
	CodeMalformedAsset Code = "MALFORMED_ASSET"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrInvalidOperation    = &Error{Code: CodeInvalidOperation}
	ErrResourceUnavailable = &Error{Code: CodeResourceUnavailable}
	ErrMalformedAsset      = &Error{Code: CodeMalformedAsset}
)

// Error is the structured error returned by sapling operations.
type Error struct {
	Code    Code
	Op      string // operation that failed, e.g. "Node.SetRPos"
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the Code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func newError(code Code, op, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, op string, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NewResourceError builds a ResourceUnavailable error. Surface implementations
// return it from Close on an already released surface so that Window.Close
// can treat the double release as a no-op.
func NewResourceError(op string, cause error, format string, args ...any) error {
	return wrapError(CodeResourceUnavailable, op, cause, format, args...)
}

// ListenerError reports a listener that returned an error or panicked.
type ListenerError struct {
	Event EventType
	Index int // position of the listener in registration order
	Err   error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("sapling: %s listener #%d: %v", e.Event, e.Index, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}
