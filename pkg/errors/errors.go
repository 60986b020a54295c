// Package errors provides structured error handling for the Reel engine.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindNotFound indicates a reference to a keyframe, track, animation or
	// marker id that does not exist where existence was required.
	KindNotFound
	// KindInvalidArgument indicates a rejected input: a non-positive clip
	// duration, a negative time, a property outside the enumeration.
	KindInvalidArgument
	// KindState indicates an operation issued against an inconsistent or
	// unexpected engine state.
	KindState
	// KindConfig indicates a configuration load or validation failure.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindInternal indicates an internal invariant violation.
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindInvalidArgument:
		return "invalid-argument"
	case KindState:
		return "state"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the Reel engine.
type Error struct {
	// Op is the operation that failed (e.g., "store.UpdateKeyframe").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound returns a KindNotFound error for the given operation.
func NotFound(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindNotFound, Err: fmt.Errorf(format, args...)}
}

// InvalidArgument returns a KindInvalidArgument error for the given operation.
func InvalidArgument(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindInvalidArgument, Err: fmt.Errorf(format, args...)}
}

// Internal returns a KindInternal error for the given operation.
func Internal(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: fmt.Errorf(format, args...)}
}

// Config returns a KindConfig error wrapping err.
func Config(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfig, Err: err}
}

// KindOf returns the kind of err if it is (or wraps) an *Error,
// KindUnknown otherwise.
func KindOf(err error) ErrorKind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err carries KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsInvalidArgument reports whether err carries KindInvalidArgument.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "timeline.HandlePointer").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
