package jsonpath

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates a JsonPath expression syntax error during compilation.
	ErrSyntax = errors.New("jsonpath: syntax error")

	// ErrNotSupported indicates a recognised construct that cannot be evaluated.
	ErrNotSupported = errors.New("jsonpath: feature not supported")
)

// ParseError locates a syntax error in the expression.
type ParseError struct {
	Expr   string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d in %q: %s", ErrSyntax, e.Offset, e.Expr, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

// UnsupportedError names the construct ("?()" or "()") that was rejected.
type UnsupportedError struct {
	Construct string
	Offset    int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s at position %d", ErrNotSupported, e.Construct, e.Offset)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrNotSupported
}
