package apperrors

import (
	"errors"
	"strings"
)

// appError is the concrete implementation behind the Error interface.
type appError struct {
	msg         string  // primary error message
	base        error   // template error for errors.Is/As matching
	wrapped     []error // additional wrapped errors
	statuscode  int     // associated HTTP status code
	expandError bool    // whether ErrorAll appends wrapped errors
}

// New creates a root-level error with the given message. Packages use this to
// declare their base sentinel and derive everything else from it.
func New(msg string) Error {
	return &appError{msg: msg}
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll returns the message followed by all wrapped errors when expansion
// is enabled, otherwise the same as Error().
func (e *appError) ErrorAll() string {
	if !e.expandError {
		return e.msg
	}
	var b strings.Builder
	b.WriteString(e.msg)
	for _, err := range e.wrapped {
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *appError) Unwrap() error {
	return e.base
}

func (e *appError) UnwrapAll() []error {
	return e.wrapped
}

// New derives a fresh error from the receiver. The derived error matches the
// receiver under errors.Is and inherits its status code, but starts with a
// clean wrapped-error list.
func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		base:       e,
		statuscode: e.statuscode,
	}
}

// Msg derives an error with a new message that wraps the receiver.
func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:         msg,
		base:        e,
		wrapped:     append([]error{e}, e.wrapped...),
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

// MsgErr derives an error with a new message, wrapping the receiver and any
// additional errors.
func (e *appError) MsgErr(msg string, errs ...error) Error {
	return &appError{
		msg:         msg,
		base:        e,
		wrapped:     append([]error{e}, errs...),
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

// Err derives an error that keeps the receiver's message and attaches the
// given errors.
func (e *appError) Err(errs ...error) Error {
	return &appError{
		msg:         e.msg,
		base:        e,
		wrapped:     append([]error{e}, errs...),
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

// SetExpandError returns a copy with the expansion flag updated.
func (e *appError) SetExpandError(flag bool) Error {
	cp := *e
	cp.expandError = flag
	return &cp
}

// SetStatusCode returns a copy with the status code updated.
func (e *appError) SetStatusCode(code int) Error {
	cp := *e
	cp.statuscode = code
	return &cp
}

func (e *appError) StatusCode() int {
	return e.statuscode
}

// Is matches the target against the template chain and every wrapped error.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.base, target) {
		return true
	}
	for _, err := range e.wrapped {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
