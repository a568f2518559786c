package jsonc

import (
	"errors"
	"fmt"
)

var (
	// ErrCommentUnterminated indicates a /* comment without a closing */.
	ErrCommentUnterminated = errors.New("jsonc: unterminated comment")

	// ErrUnterminatedString indicates a string whose closing quote is not on
	// the line it starts on.
	ErrUnterminatedString = errors.New("jsonc: unterminated string")
)

// CommentUnterminatedError points at the opening /* (1-based line and column).
type CommentUnterminatedError struct {
	Line   int
	Column int
}

func (e *CommentUnterminatedError) Error() string {
	return fmt.Sprintf("%s: opened at line %d, column %d", ErrCommentUnterminated, e.Line, e.Column)
}

func (e *CommentUnterminatedError) Unwrap() error {
	return ErrCommentUnterminated
}

// StructureError points at the opening quote of an unterminated string.
type StructureError struct {
	Line   int
	Column int
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: opened at line %d, column %d", ErrUnterminatedString, e.Line, e.Column)
}

func (e *StructureError) Unwrap() error {
	return ErrUnterminatedString
}
