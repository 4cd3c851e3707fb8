// Package bind maps Go values to node trees and back.
//
// # Usage
//
//	type Foo struct {
//	    Name string
//	    Tags []string
//	}
//	e := bind.New(bind.MemberNaming(bind.LowerCamel))
//
//	root := node.NewRoot("xml", node.ObjectKind, "Foo", 0, nil)
//	err := e.Serialize(Foo{Name: "x", Tags: []string{"a", "b"}}, root)
//
//	var foo Foo
//	err = e.Deserialize(root, &foo)
//
// The engine descends the value and the tree in lock-step, resolving type
// facts through a typecache.Cache. Wire names for types and members come
// from the naming options, struct tags (`docmap:"name=...,omit"`) and
// typecache.Meta annotations, and are the same in both directions.
//
// Errors carry the path of the offending node and wrap one of
// ErrUnmatchedElement, ErrParse, ErrUnsupportedType, node.ErrInvalidNodeShape
// or node.ErrReadOnlyNode.
//
// # Related Packages
//
//   - github.com/signadot/docmap/node - document nodes
//   - github.com/signadot/docmap/typecache - type descriptors
//   - github.com/signadot/docmap/format - wire format adapters
package bind
