package hshex

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrIO              = errors.New("hshex: i/o error")
	ErrFormat          = errors.New("hshex: format error")
	ErrAllocation      = errors.New("hshex: allocation error")
	ErrInvalidArgument = errors.New("hshex: invalid argument")
)

// FormatError reports input that was read successfully but does not follow
// the HSHEX grammar.
type FormatError struct {
	Reason string
	// Token is the offending header or dimension text, possibly truncated.
	Token string
	// Index is the 0-based pixel position for pixel errors, -1 otherwise.
	Index int
}

func (e *FormatError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("hshex: %s at index %d", e.Reason, e.Index)
	}
	return "hshex: " + e.Reason
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func errBadHeader(tok string) error {
	return &FormatError{Reason: "bad header", Token: tok, Index: -1}
}

func errBadDimensions(tok string) error {
	return &FormatError{Reason: "bad dimensions", Token: tok, Index: -1}
}

func errBadPixel(i int) error { return &FormatError{Reason: "bad pixel", Index: i} }

// IOError wraps a failure of the underlying reader, writer or file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("hshex: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("hshex: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
