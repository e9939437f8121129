// Package errors provides structured error handling for the reactive runtime.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindCyclicBinding indicates a property binding that directly or
	// transitively reads itself. This is a fatal programming error.
	KindCyclicBinding
	// KindReadOnlyModel indicates a write to a model that does not
	// support mutation. Such writes are logged and ignored.
	KindReadOnlyModel
	// KindRowOutOfRange indicates a write addressed to a row outside
	// the model's bounds. Such writes are logged and ignored.
	KindRowOutOfRange
	// KindAffinity indicates a property or model mutation from a
	// goroutine other than the UI loop's goroutine.
	KindAffinity
	// KindAnimation indicates a misconfigured property animation.
	KindAnimation
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindCyclicBinding:
		return "cyclic-binding"
	case KindReadOnlyModel:
		return "read-only-model"
	case KindRowOutOfRange:
		return "row-out-of-range"
	case KindAffinity:
		return "affinity"
	case KindAnimation:
		return "animation"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ReactiveError represents a structured error in the reactive runtime.
type ReactiveError struct {
	// Op is the operation that failed (e.g., "property.Get").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error, if any.
	Err error
	// Detail carries extra context such as a row index or property name.
	Detail string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ReactiveError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s [%s] %s: %v", e.Op, e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ReactiveError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "platform.Loop.Pump").
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

// ErrorHandler receives errors reported by the reactive runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ReactiveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
