package node

import "fmt"

// Kind is the structural kind of a node.
type Kind int

const (
	ValueKind Kind = iota
	ObjectKind
	ArrayKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ValueKind:  "Value",
		ObjectKind: "Object",
		ArrayKind:  "Array",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Value":  ValueKind,
		"Object": ObjectKind,
		"Array":  ArrayKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

// IsContainer reports whether nodes of kind k hold children.
func (k Kind) IsContainer() bool {
	return k == ObjectKind || k == ArrayKind
}

// Traits are per-node constraints imposed by the format that produced
// the node.
type Traits uint8

const (
	// FixedKind nodes keep the kind they were constructed with.
	FixedKind Traits = 1 << iota
	// ReadOnly nodes reject every mutation.
	ReadOnly
	// NullAsEmpty nodes store a null value as the empty string.
	NullAsEmpty
)

func (t Traits) Has(o Traits) bool {
	return t&o == o
}

// Shape describes the kind and traits given to children created under a
// node. A nil Shape leaves children unconstrained.
type Shape struct {
	Kind     Kind
	Traits   Traits
	Children *Shape
}
