package value

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedForType indicates an operation was invoked on a variant that does not support it.
	ErrUnsupportedForType = errors.New("value: operation not supported for type")

	// ErrTypeMismatch indicates a strict accessor was used on the wrong variant.
	ErrTypeMismatch = errors.New("value: type mismatch")

	// ErrIndexOutOfRange indicates an array index outside [0, length).
	ErrIndexOutOfRange = errors.New("value: index out of range")

	// ErrNumberFormat indicates a numeric lexeme that cannot be decoded.
	ErrNumberFormat = errors.New("value: number format error")

	// ErrUnsupportedGoType indicates FromAny received a Go value with no JSON mapping.
	ErrUnsupportedGoType = errors.New("value: unsupported Go type")
)

// UnsupportedForTypeError carries the attempted operation and the actual variant.
type UnsupportedForTypeError struct {
	Op   string
	Type Type
}

func (e *UnsupportedForTypeError) Error() string {
	return fmt.Sprintf("%s: %s does not support #%s", ErrUnsupportedForType, e.Type, e.Op)
}

func (e *UnsupportedForTypeError) Unwrap() error {
	return ErrUnsupportedForType
}

// TypeMismatchError is returned by the strict accessors.
type TypeMismatchError struct {
	Want []Type
	Got  Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: want %v, got %s", ErrTypeMismatch, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d, length %d", ErrIndexOutOfRange, e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

type NumberFormatError struct {
	Lexeme string
	Err    error
}

func (e *NumberFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", ErrNumberFormat, e.Lexeme, e.Err)
	}
	return fmt.Sprintf("%s: %q", ErrNumberFormat, e.Lexeme)
}

func (e *NumberFormatError) Unwrap() error {
	return ErrNumberFormat
}

func unsupported(op string, t Type) error {
	return &UnsupportedForTypeError{Op: op, Type: t}
}

func mismatch(got Type, want ...Type) error {
	return &TypeMismatchError{Want: want, Got: got}
}
