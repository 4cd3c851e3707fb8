package bind

import (
	"reflect"
	"sync"

	"github.com/signadot/docmap/debug"
	"github.com/signadot/docmap/node"
	"github.com/signadot/docmap/typecache"
)

// NodeUnmarshaler is implemented by types that read themselves from a
// node. The engine calls it instead of descending into the type.
type NodeUnmarshaler interface {
	UnmarshalNode(*node.Node) error
}

// NodeMarshaler is implemented by types that write themselves into a
// node.
type NodeMarshaler interface {
	MarshalNode(*node.Node) error
}

var (
	nodeType            = reflect.TypeFor[*node.Node]()
	nodeUnmarshalerType = reflect.TypeFor[NodeUnmarshaler]()
	nodeMarshalerType   = reflect.TypeFor[NodeMarshaler]()
)

// Engine converts between Go values and node trees. An Engine is safe
// for concurrent use; each call owns the values and nodes it is given.
type Engine struct {
	opts *Options

	// index maps a struct descriptor to its members by wire name. It
	// depends on the naming policy and so lives with the engine.
	index sync.Map // *typecache.Descriptor -> map[string]*typecache.Member
}

func New(opts ...Option) *Engine {
	o := newOptions()
	for _, opt := range opts {
		opt.applyOption(o)
	}
	return &Engine{opts: o}
}

func (e *Engine) Options() *Options {
	return e.opts
}

// RootName returns the wire name used for a document root holding a
// value of type t.
func (e *Engine) RootName(t reflect.Type) string {
	return e.opts.TypeName(e.opts.cache.Get(t))
}

func (e *Engine) members(d *typecache.Descriptor) map[string]*typecache.Member {
	if v, ok := e.index.Load(d); ok {
		return v.(map[string]*typecache.Member)
	}
	members := d.Members()
	res := make(map[string]*typecache.Member, len(members))
	for _, m := range members {
		name := e.opts.MemberName(m)
		if _, ok := res[name]; ok {
			continue
		}
		res[name] = m
	}
	v, loaded := e.index.LoadOrStore(d, res)
	if !loaded && debug.Cache() {
		debug.Logf("member index of %s: %d names", d.FullName, len(res))
	}
	return v.(map[string]*typecache.Member)
}

// kindOf is the node kind a value of type d is written as before its
// content is known.
func (e *Engine) kindOf(d *typecache.Descriptor) node.Kind {
	switch {
	case d.IsNullable:
		return e.kindOf(d.Underlying())
	case e.opts.writer(d.Type) != nil, d.IsScalar, d.IsInterface, d.IsUnsupported:
		return node.ValueKind
	case d.Implements(nodeMarshalerType):
		return node.ValueKind
	case d.IsList:
		return node.ArrayKind
	}
	return node.ObjectKind
}

// Decode reads a T from n.
func Decode[T any](e *Engine, n *node.Node) (T, error) {
	var res T
	err := e.Deserialize(n, &res)
	return res, err
}
