package ed

import (
	"errors"
	"fmt"
)

// Kind categorizes interpreter errors.
type Kind uint8

const (
	// KindAddress is a range outside the buffer or an unresolved address.
	KindAddress Kind = iota
	// KindParse is a malformed or unknown command.
	KindParse
	// KindUnimplemented is a recognized command with no implementation.
	KindUnimplemented
	// KindMarkNotSet is a mark address naming an unset mark.
	KindMarkNotSet
	// KindIO is a file or shell failure.
	KindIO
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAddress:
		return "address"
	case KindParse:
		return "parse"
	case KindUnimplemented:
		return "unimplemented"
	case KindMarkNotSet:
		return "mark"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrAddress       = errors.New("address error")
	ErrParse         = errors.New("parse error")
	ErrUnimplemented = errors.New("unimplemented")
	ErrMarkNotSet    = errors.New("mark not set")
	ErrIO            = errors.New("io error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindAddress:
		return ErrAddress
	case KindParse:
		return ErrParse
	case KindUnimplemented:
		return ErrUnimplemented
	case KindMarkNotSet:
		return ErrMarkNotSet
	default:
		return ErrIO
	}
}

// Error is a failed command. Msg is the text shown to the user.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching against the kind sentinels.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapIO(err error, format string, args ...any) *Error {
	return &Error{Kind: KindIO, Msg: fmt.Sprintf(format, args...) + ": " + err.Error(), Err: err}
}
