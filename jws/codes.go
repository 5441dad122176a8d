package jws

import "go.bryk.io/jose/errors"

// Code is the coarse-grained error taxonomy every public jws operation
// reports through, on top of the stack-tracing errors.Error values the
// rest of the module uses.
type Code int

const (
	// Ok reports a successful operation; it is never itself wrapped in an
	// error value, but is returned by Verify on success.
	Ok Code = iota
	// BadInput marks structural failures: bad base64, bad JSON, missing
	// required member, wrong segment count.
	BadInput
	// InvalidKey marks key-kind/algorithm mismatches, unknown 'alg', or a
	// missing resolvable key.
	InvalidKey
	// InvalidSignature marks a cryptographically invalid signature.
	InvalidSignature
	// MemoryError marks an allocation failure.
	MemoryError
	// InternalError marks an unexpected, otherwise unclassified failure.
	InternalError
)

// String implements fmt.Stringer.
func (c Code) String() string {
	switch c {
	case Ok:
		return "Ok"
	case BadInput:
		return "BadInput"
	case InvalidKey:
		return "InvalidKey"
	case InvalidSignature:
		return "InvalidSignature"
	case MemoryError:
		return "MemoryError"
	case InternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// codedError carries a Code alongside the teacher's stack-tracing error.
type codedError struct {
	code Code
	err  error
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

// Code reports the taxonomy code carried by the error.
func (e *codedError) Code() Code {
	return e.code
}

// newError builds a codedError wrapping a freshly created errors.Error,
// with `msg` as its message.
func newError(code Code, msg string) error {
	return &codedError{code: code, err: errors.New(msg)}
}

// wrapError builds a codedError wrapping `cause` with `prefix`, preserving
// its stack trace when available.
func wrapError(code Code, cause error, prefix string) error {
	if cause == nil {
		return nil
	}
	return &codedError{code: code, err: errors.Wrap(cause, prefix)}
}

// errorf builds a codedError from a format string, following the teacher's
// errors.Errorf convention (supports %w).
func errorf(code Code, format string, args ...any) error {
	return &codedError{code: code, err: errors.Errorf(format, args...)}
}

// codeCarrier is implemented by any error that knows its own Code.
type codeCarrier interface {
	Code() Code
}

// CodeOf extracts the Code carried by `err`. Errors not produced by this
// package default to InternalError; a nil error reports Ok.
func CodeOf(err error) Code {
	if err == nil {
		return Ok
	}
	var cc codeCarrier
	if errors.As(err, &cc) {
		return cc.Code()
	}
	return InternalError
}
