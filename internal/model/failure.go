package model

import (
	"errors"
	"fmt"
	"runtime"
)

// Sentinel errors for the failures a prompt can raise. Callers match on
// them with errors.Is; the typed errors below wrap them.
var (
	// ErrInvalidFormat means the input text is not a valid integer.
	ErrInvalidFormat = errors.New("invalid integer format")

	// ErrOutOfRange means the input is a well-formed integer whose double
	// does not fit in a Reading. It is a special case of ErrInvalidFormat.
	ErrOutOfRange = fmt.Errorf("%w: value out of range", ErrInvalidFormat)

	// ErrInputEmpty means the line read contained nothing but whitespace.
	ErrInputEmpty = fmt.Errorf("%w: input is empty", ErrInvalidFormat)

	// ErrInputFailed means reading from the input stream failed.
	ErrInputFailed = errors.New("failed to read input")

	// ErrInputClosed means the input stream ended before a line was read.
	// No later attempt can succeed once this is returned.
	ErrInputClosed = errors.New("input closed")

	// ErrOutputFailed means the prompt could not be written. Like
	// ErrInputClosed it ends any retry loop.
	ErrOutputFailed = errors.New("failed to write output")
)

// ParseError reports a line that could not be converted to a Reading.
type ParseError struct {
	// Input is the offending text with surrounding whitespace removed.
	Input string

	// Err is the sentinel describing the failure (ErrInvalidFormat,
	// ErrOutOfRange or ErrInputEmpty).
	Err error

	// Cause is the underlying strconv error, if any.
	Cause error
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid number %q: %v", e.Input, e.Err)
}

// Unwrap exposes both the sentinel and the strconv cause to errors.Is/As.
func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// RuntimeFailure is a recovered panic whose value is a runtime.Error,
// i.e. a failure raised by the Go runtime itself (nil dereference, index
// out of range, and so on) while an attempt was in progress.
type RuntimeFailure struct {
	Err runtime.Error
}

// Error satisfies the error interface.
func (e *RuntimeFailure) Error() string {
	return "runtime failure: " + e.Err.Error()
}

// Unwrap returns the recovered runtime error.
func (e *RuntimeFailure) Unwrap() error {
	return e.Err
}

// PanicError is a recovered panic whose value is not a runtime.Error.
type PanicError struct {
	Value any
}

// Error satisfies the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value if it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// FromPanic converts a value returned by recover() into an error.
// Runtime errors become *RuntimeFailure; everything else, including
// ordinary error values, becomes *PanicError.
func FromPanic(v any) error {
	if rerr, ok := v.(runtime.Error); ok {
		return &RuntimeFailure{Err: rerr}
	}
	return &PanicError{Value: v}
}

// FailureKind is the category a failed attempt falls into. The retrying
// prompt reports each kind with its own message.
type FailureKind string

const (
	// KindInvalidFormat covers input that is not an integer.
	KindInvalidFormat FailureKind = "invalid-format"

	// KindRuntime covers failures raised by the Go runtime.
	KindRuntime FailureKind = "runtime"

	// KindUnclassified covers every failure not matched above.
	KindUnclassified FailureKind = "unclassified"
)

// String returns the string representation of FailureKind.
func (k FailureKind) String() string {
	return string(k)
}

// Classify maps an error to its FailureKind. The order of the checks
// matters: unclassified is the fallback and must stay last.
func Classify(err error) FailureKind {
	var rf *RuntimeFailure
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return KindInvalidFormat
	case errors.As(err, &rf):
		return KindRuntime
	default:
		return KindUnclassified
	}
}

// InputKind enumerates the outcomes of reading a single line when the
// caller wants to tell exhausted input apart from garbage and from a broken
// input stream.
type InputKind string

const (
	// InputOK means a Reading was parsed.
	InputOK InputKind = "ok"

	// InputFailed means the input stream could not be read.
	InputFailed InputKind = "input-failed"

	// InputEmpty means nothing at all was read because the input ended.
	// A blank line is not empty: it holds a line terminator and is
	// reported as InputNotNumber.
	InputEmpty InputKind = "input-empty"

	// InputNotNumber means the line held text that is not an integer.
	InputNotNumber InputKind = "input-not-number"
)

// String returns the string representation of InputKind.
func (k InputKind) String() string {
	return string(k)
}

// ClassifyInput maps the error returned by a single read to an InputKind.
// A nil error maps to InputOK.
func ClassifyInput(err error) InputKind {
	switch {
	case err == nil:
		return InputOK
	case errors.Is(err, ErrInputClosed):
		return InputEmpty
	case errors.Is(err, ErrInvalidFormat):
		return InputNotNumber
	default:
		return InputFailed
	}
}
