package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned for Go kinds with no JSON form
	// (channels, functions, complex numbers, maps with non-string keys).
	ErrUnsupportedType = errors.New("mapper: unsupported type")

	// ErrInvalidTarget is returned when Unmarshal is not given a non-nil pointer.
	ErrInvalidTarget = errors.New("mapper: target must be a non-nil pointer")

	// ErrCycle is returned when Marshal meets a pointer it is already inside.
	ErrCycle = errors.New("mapper: cycle detected")

	// ErrOverflow is returned when a number does not fit the target kind.
	ErrOverflow = errors.New("mapper: number overflows target")
)

// MarshalError locates a Marshal failure inside the Go value.
type MarshalError struct {
	FieldPath string // e.g. "Owner.Pets[2].Name"
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %v", e.FieldPath, e.Err)
	}
	return fmt.Sprintf("marshal error: %v", e.Err)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError locates an Unmarshal failure inside the document.
type UnmarshalError struct {
	FieldPath string // e.g. "owner.pets[2].name"
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %v", e.FieldPath, e.Err)
	}
	return fmt.Sprintf("unmarshal error: %v", e.Err)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
