// Package apperrors provides the error type used across the client. It extends
// the standard error interface with error chaining, HTTP status codes, and
// message derivation, so that a package can declare a small set of sentinel
// errors and derive specific instances from them while errors.Is keeps
// matching the sentinel.
package apperrors

// Error is the application error interface. Derivation methods return a new
// Error that wraps the receiver, so sentinels are never mutated.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // derives a fresh error using the receiver as template
	Msg(msg string) Error                  // derives an error with a new message, wrapping the receiver
	MsgErr(msg string, err ...error) Error // like Msg, additionally wrapping the given errors
	Err(err ...error) Error                // keeps the message, attaches the given errors
	SetExpandError(bool) Error             // controls whether ErrorAll includes wrapped errors
	SetStatusCode(int) Error               // associates an HTTP status code
	StatusCode() int                       // returns the associated status code, 0 if unset
	ErrorAll() string                      // full message including wrapped errors
	UnwrapAll() []error                    // all wrapped errors in attachment order
}
