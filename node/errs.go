package node

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNodeShape = errors.New("invalid node shape")
	ErrReadOnlyNode     = errors.New("read-only node")
)

// ShapeError reports an operation applied to a node of the wrong kind.
type ShapeError struct {
	Path string
	Op   string
	Want Kind
	Got  Kind
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s at %s: %s needs %s node, got %s", ErrInvalidNodeShape, e.Path, e.Op, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidNodeShape
}

// ReadOnlyError reports a mutation of a node whose format forbids it.
type ReadOnlyError struct {
	Path string
	Op   string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("%s at %s: %s", ErrReadOnlyNode, e.Path, e.Op)
}

func (e *ReadOnlyError) Unwrap() error {
	return ErrReadOnlyNode
}
