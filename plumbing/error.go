package plumbing

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound is returned when an object is not found.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidType is returned when an invalid object type is provided.
	ErrInvalidType = errors.New("invalid object type")
)

// FormatError is returned when a textual representation of a hash is
// malformed: wrong length or non-hexadecimal characters.
type FormatError struct {
	Value  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed hash %q: %s", e.Value, e.Reason)
}

// Unwrap implements the Unwrap interface and returns the wrapped error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the raw bytes of an object do not match
// the shape expected for its declared type. Field names the part of
// the object that failed to decode.
type DecodeError struct {
	Type   ObjectType
	Field  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed %s object: field %q: %s", e.Type, e.Field, e.Reason)
}

// Unwrap implements the Unwrap interface and returns the wrapped error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
