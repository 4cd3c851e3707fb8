package bind

import (
	"errors"
	"fmt"
)

var (
	ErrUnmatchedElement = errors.New("unmatched element")
	ErrParse            = errors.New("parse error")
	ErrUnsupportedType  = errors.New("unsupported type")
)

// UnmatchedElementError reports a document node with no counterpart in the
// target type, or a root or element name that fails validation.
type UnmatchedElementError struct {
	Path string
	Name string
	// Expected is the wire name that was expected, or the owning type
	// when a member was looked up.
	Expected string
}

func (e *UnmatchedElementError) Error() string {
	return fmt.Sprintf("unmatched element %q at %s (expected %s)", e.Name, e.Path, e.Expected)
}

func (e *UnmatchedElementError) Unwrap() error {
	return ErrUnmatchedElement
}

// ParseError reports scalar text that cannot be converted to its target
// type.
type ParseError struct {
	Path  string
	Type  string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error at %s: cannot read %q as %s: %v", e.Path, e.Value, e.Type, e.Err)
	}
	return fmt.Sprintf("parse error at %s: cannot read %q as %s", e.Path, e.Value, e.Type)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// TypeError reports a Go type that has no document form.
type TypeError struct {
	Path    string
	Type    string
	Message string
}

func (e *TypeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("type error at %s: %s: %s", e.Path, e.Type, e.Message)
	}
	return fmt.Sprintf("type error: %s: %s", e.Type, e.Message)
}

func (e *TypeError) Unwrap() error {
	return ErrUnsupportedType
}

var errEmpty = errors.New("empty value for non-nullable scalar")
