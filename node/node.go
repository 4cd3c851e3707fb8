package node

import (
	"encoding"
	"fmt"
	"strconv"
)

// Node is one position in a document tree. Object children are kept in
// insertion order; Array children are positional and may be anonymous.
type Node struct {
	kind   Kind
	parent *Node
	index  int
	name   string
	named  bool
	format string

	value    string
	null     bool
	children []*Node

	traits Traits
	shape  *Shape
}

// New returns a detached, anonymous node of kind k.
func New(k Kind) *Node {
	return &Node{kind: k}
}

// NewRoot returns a root node for a document in format f. A non-empty
// name makes the root addressable. shape constrains descendants.
func NewRoot(f string, k Kind, name string, traits Traits, shape *Shape) *Node {
	return &Node{
		kind:   k,
		name:   name,
		named:  name != "",
		format: f,
		traits: traits,
		shape:  shape,
	}
}

// Scalar returns a detached Value node. An empty name leaves it anonymous.
func Scalar(name, v string) *Node {
	return &Node{kind: ValueKind, name: name, named: name != "", value: v}
}

// Null returns a detached null Value node.
func Null(name string) *Node {
	return &Node{kind: ValueKind, name: name, named: name != "", null: true}
}

// Object returns a detached Object node holding children.
func Object(name string, children ...*Node) *Node {
	return container(ObjectKind, name, children)
}

// Array returns a detached Array node holding children.
func Array(name string, children ...*Node) *Node {
	return container(ArrayKind, name, children)
}

func container(k Kind, name string, children []*Node) *Node {
	res := &Node{kind: k, name: name, named: name != ""}
	for _, c := range children {
		res.attach(c)
	}
	return res
}

func (n *Node) attach(c *Node) {
	c.parent = n
	c.index = len(n.children)
	n.children = append(n.children, c)
}

func (n *Node) Kind() Kind     { return n.kind }
func (n *Node) Traits() Traits { return n.traits }
func (n *Node) Parent() *Node  { return n.parent }
func (n *Node) Index() int     { return n.index }
func (n *Node) Len() int       { return len(n.children) }

// Name returns the node's name and whether it is addressable by name.
func (n *Node) Name() (string, bool) {
	return n.name, n.named
}

// Format returns the label of the format that produced the tree.
func (n *Node) Format() string {
	return n.Root().format
}

func (n *Node) Root() *Node {
	res := n
	for res.parent != nil {
		res = res.parent
	}
	return res
}

// IsNull reports whether the node is a Value holding null.
func (n *Node) IsNull() bool {
	return n.kind == ValueKind && n.null
}

// coercible reports whether n may be read as kind k. Fixed-kind nodes
// only read as their own kind; otherwise an empty value reads as an empty
// container, a childless container reads as an empty value, and Object
// and Array read as one another.
func (n *Node) coercible(k Kind) bool {
	if n.kind == k {
		return true
	}
	if n.traits.Has(FixedKind) {
		return false
	}
	switch {
	case n.kind == ValueKind:
		return n.value == ""
	case k == ValueKind:
		return len(n.children) == 0
	default:
		return true
	}
}

// Expect checks that n can be read as kind k.
func (n *Node) Expect(k Kind) error {
	if n.coercible(k) {
		return nil
	}
	return &ShapeError{Path: n.Path(), Op: "read " + k.String(), Want: k, Got: n.kind}
}

// Value returns the raw scalar payload. A null value reads as "".
func (n *Node) Value() (string, error) {
	if n.kind != ValueKind {
		if !n.coercible(ValueKind) {
			return "", &ShapeError{Path: n.Path(), Op: "value", Want: ValueKind, Got: n.kind}
		}
		return "", nil
	}
	return n.value, nil
}

// Children returns the ordered children of a container node.
func (n *Node) Children() ([]*Node, error) {
	if n.kind == ValueKind {
		if !n.coercible(ArrayKind) {
			return nil, &ShapeError{Path: n.Path(), Op: "children", Want: ArrayKind, Got: n.kind}
		}
		return nil, nil
	}
	return n.children, nil
}

// NamedChildren maps child names to children. When names repeat the
// first child wins.
func (n *Node) NamedChildren() (map[string]*Node, error) {
	if !n.coercible(ObjectKind) {
		return nil, &ShapeError{Path: n.Path(), Op: "named children", Want: ObjectKind, Got: n.kind}
	}
	res := make(map[string]*Node, len(n.children))
	for _, c := range n.children {
		if !c.named {
			continue
		}
		if _, ok := res[c.name]; ok {
			continue
		}
		res[c.name] = c
	}
	return res, nil
}

// Get returns the first child named name, or nil.
func (n *Node) Get(name string) (*Node, error) {
	if !n.coercible(ObjectKind) {
		return nil, &ShapeError{Path: n.Path(), Op: "get " + strconv.Quote(name), Want: ObjectKind, Got: n.kind}
	}
	for _, c := range n.children {
		if c.named && c.name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (n *Node) readOnly(op string) error {
	if n.traits.Has(ReadOnly) {
		return &ReadOnlyError{Path: n.Path(), Op: op}
	}
	return nil
}

// SetKind changes the kind of n. Changing to Value drops nothing: a node
// with children cannot become a Value.
func (n *Node) SetKind(k Kind) error {
	if err := n.readOnly("set kind"); err != nil {
		return err
	}
	if n.kind == k {
		return nil
	}
	if n.traits.Has(FixedKind) || (k == ValueKind && len(n.children) != 0) {
		return &ShapeError{Path: n.Path(), Op: "set kind " + k.String(), Want: k, Got: n.kind}
	}
	n.kind = k
	n.value = ""
	n.null = false
	return nil
}

func (n *Node) SetName(name string) error {
	if err := n.readOnly("set name"); err != nil {
		return err
	}
	n.name = name
	n.named = true
	return nil
}

// SetValue stores v as the scalar payload. nil becomes null, or "" on
// NullAsEmpty nodes; booleans are always "true" or "false".
func (n *Node) SetValue(v any) error {
	if err := n.readOnly("set value"); err != nil {
		return err
	}
	if n.kind != ValueKind {
		if n.traits.Has(FixedKind) || len(n.children) != 0 {
			return &ShapeError{Path: n.Path(), Op: "set value", Want: ValueKind, Got: n.kind}
		}
		n.kind = ValueKind
	}
	if v == nil {
		n.value = ""
		n.null = !n.traits.Has(NullAsEmpty)
		return nil
	}
	s, err := text(v)
	if err != nil {
		return fmt.Errorf("set value at %s: %w", n.Path(), err)
	}
	n.value = s
	n.null = false
	return nil
}

func text(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case []byte:
		return string(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case encoding.TextMarshaler:
		d, err := x.MarshalText()
		if err != nil {
			return "", err
		}
		return string(d), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Add appends a new child of kind k. On Object nodes name addresses the
// child; on Array nodes an empty name leaves the child anonymous. A
// Value node without payload becomes an Object first.
func (n *Node) Add(name string, k Kind) (*Node, error) {
	if err := n.readOnly("add child"); err != nil {
		return nil, err
	}
	if n.kind == ValueKind {
		if n.traits.Has(FixedKind) || n.value != "" {
			return nil, &ShapeError{Path: n.Path(), Op: "add child", Want: ObjectKind, Got: n.kind}
		}
		n.kind = ObjectKind
		n.null = false
	}
	c := &Node{kind: k, name: name, named: name != "" || n.kind == ObjectKind}
	if n.shape != nil {
		if n.shape.Traits.Has(FixedKind) && n.shape.Kind != k {
			return nil, &ShapeError{Path: childPath(n, c, len(n.children)), Op: "add child", Want: n.shape.Kind, Got: k}
		}
		c.traits = n.shape.Traits
		c.shape = n.shape.Children
	}
	n.attach(c)
	return c, nil
}

// CopyFrom replaces the content of n with a copy of src's content. The
// name and position of n are kept.
func (n *Node) CopyFrom(src *Node) error {
	if err := n.SetKind(src.kind); err != nil {
		return err
	}
	if src.kind == ValueKind {
		if src.null {
			return n.SetValue(nil)
		}
		return n.SetValue(src.value)
	}
	for _, sc := range src.children {
		c, err := n.Add(sc.name, sc.kind)
		if err != nil {
			return err
		}
		if !sc.named {
			c.named = false
		}
		if err := c.CopyFrom(sc); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a detached deep copy of n without format constraints.
func (n *Node) Clone() *Node {
	res := &Node{
		kind:   n.kind,
		name:   n.name,
		named:  n.named,
		format: n.format,
		value:  n.value,
		null:   n.null,
	}
	for _, c := range n.children {
		res.attach(c.Clone())
	}
	return res
}

// Fix keeps n at its current kind from now on.
func (n *Node) Fix() {
	n.traits |= FixedKind
}

// Freeze marks n and its descendants read-only.
func (n *Node) Freeze() {
	_ = n.Visit(func(x *Node, isPost bool) (bool, error) {
		if !isPost {
			x.traits |= ReadOnly
		}
		return true, nil
	})
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}
