package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is wrapped by every error returned for malformed JSON text.
	ErrParse = errors.New("parser: malformed JSON")

	// ErrTooDeep indicates nesting beyond the configured maximum depth.
	ErrTooDeep = errors.New("parser: nesting too deep")
)

// ParseError locates a failure in the input. Err holds the underlying cause
// when there is one (for example a *value.NumberFormatError).
type ParseError struct {
	Offset  int
	Excerpt string
	Msg     string
	Err     error
}

func (e *ParseError) Error() string {
	s := fmt.Sprintf("%s at offset %d: %s", ErrParse, e.Offset, e.Msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	if e.Excerpt != "" {
		s += fmt.Sprintf(" (near %q)", e.Excerpt)
	}
	return s
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}
