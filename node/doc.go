// Package node provides the format-agnostic document tree used by the
// binding engine.
//
// # Overview
//
// Every wire format (XML, URL-encoded forms, YAML, JSON) is parsed into a
// tree of *Node and rendered from one. The engine in package bind only
// ever talks to this tree, so adding a format never touches traversal.
//
// The Node works as a tagged union: the kind decides which parts are
// meaningful.
//
//   - ValueKind: a raw scalar payload (text), possibly null
//   - ObjectKind: named children, in insertion order
//   - ArrayKind: ordered children, named or anonymous
//
// Each node keeps a parent link, so Path can reconstruct the route from
// the root for error messages:
//
//	$.orders[3].lines.line[1]
//
// # Format constraints
//
// Formats that are strongly typed to one kind construct their nodes with
// the FixedKind trait, for example a URL-encoded pair is always a Value.
// Reading or mutating such a node as another kind fails with a
// *ShapeError wrapping ErrInvalidNodeShape. Formats without that
// restriction (XML) let the engine decide: an empty element may be read as
// an empty list and a container may be read as Object or Array.
//
// Frozen trees (see Freeze) reject mutation with ErrReadOnlyNode.
//
// # Creating Nodes
//
//	root := node.Object("Foo",
//	    node.Scalar("name", "x"),
//	    node.Array("tags", node.Scalar("", "a"), node.Scalar("", "b")),
//	)
//
// Adapters build trees with NewRoot and Add so that children inherit the
// format's Shape.
package node
