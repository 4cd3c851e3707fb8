package bind

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/signadot/docmap/debug"
	"github.com/signadot/docmap/node"
	"github.com/signadot/docmap/typecache"
)

// Serialize writes v into root. A named root is renamed to the wire name
// of v's type, the same name Deserialize validates.
func (e *Engine) Serialize(v any, root *node.Node) error {
	if v == nil {
		return root.SetValue(nil)
	}
	rv := reflect.ValueOf(v)
	d := e.opts.cache.Get(rv.Type())
	if _, named := root.Name(); named {
		if err := root.SetName(e.opts.TypeName(d)); err != nil {
			return err
		}
	}
	w := &writer{Engine: e, visited: map[visitKey]string{}}
	return w.write(d, nil, rv, root)
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

// writer carries the per-call state of a serialization. visited holds
// the references on the path from the root, to detect cycles.
type writer struct {
	*Engine
	visited map[visitKey]string
}

func (w *writer) write(d *typecache.Descriptor, m *typecache.Member, v reflect.Value, n *node.Node) error {
	if debug.Traverse() {
		debug.Logf("write %s -> %s", d.FriendlyName, n.Path())
	}
	if fn := w.opts.writer(d.Type); fn != nil {
		return fn(w.opts, m, v.Interface(), n)
	}
	if d.IsNullable {
		if v.IsNil() {
			return n.SetValue(nil)
		}
		return w.enter(d, v, n, func() error {
			return w.write(d.Underlying(), m, v.Elem(), n)
		})
	}
	if !d.IsInterface && d.Implements(nodeMarshalerType) {
		return w.writeHook(d, v, n)
	}
	switch {
	case d.IsInterface:
		return w.writeInterface(m, v, n)
	case d.IsUnsupported:
		return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: "no document form"}
	case d.IsScalar:
		s, err := formatScalar(d, v)
		if err != nil {
			return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: err.Error()}
		}
		return n.SetValue(s)
	case d.IsList:
		return w.writeList(d, v, n)
	case d.IsDictionary:
		return w.writeDictionary(d, v, n)
	case d.IsStruct:
		return w.writeStruct(d, v, n)
	}
	return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: "no document form"}
}

// enter runs f with v marked as visited.
func (w *writer) enter(d *typecache.Descriptor, v reflect.Value, n *node.Node, f func() error) error {
	key := visitKey{ptr: v.Pointer(), typ: d.Type}
	if prev, seen := w.visited[key]; seen {
		return &TypeError{
			Path:    n.Path(),
			Type:    d.FriendlyName,
			Message: fmt.Sprintf("circular reference, first seen at %s", prev),
		}
	}
	w.visited[key] = n.Path()
	defer delete(w.visited, key)
	return f()
}

func (w *writer) writeHook(d *typecache.Descriptor, v reflect.Value, n *node.Node) error {
	acc, err := d.Accessor("MarshalNode", nodeType)
	if err != nil {
		return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: err.Error()}
	}
	if !v.CanAddr() {
		p := reflect.New(d.Type)
		p.Elem().Set(v)
		v = p.Elem()
	}
	out := acc.Call(v, reflect.ValueOf(n))
	if err, _ := out[0].Interface().(error); err != nil {
		return err
	}
	return nil
}

// writeInterface writes the dynamic value of v. A *node.Node is grafted
// as a copy.
func (w *writer) writeInterface(m *typecache.Member, v reflect.Value, n *node.Node) error {
	if v.IsNil() {
		return n.SetValue(nil)
	}
	x := v.Elem()
	if x.Type() == nodeType {
		src := x.Interface().(*node.Node)
		if src == nil {
			return n.SetValue(nil)
		}
		return n.CopyFrom(src)
	}
	xd := w.opts.cache.Get(x.Type())
	if xd.IsInterface {
		return w.writeInterface(m, x, n)
	}
	return w.write(xd, m, x, n)
}

func (w *writer) writeList(d *typecache.Descriptor, v reflect.Value, n *node.Node) error {
	if err := n.SetKind(node.ArrayKind); err != nil {
		return err
	}
	if d.Kind == reflect.Slice && v.Len() > 0 && d.Elem().Type.Size() > 0 {
		return w.enter(d, v, n, func() error { return w.writeElems(d, v, n) })
	}
	return w.writeElems(d, v, n)
}

func (w *writer) writeElems(d *typecache.Descriptor, v reflect.Value, n *node.Node) error {
	ed := d.Elem()
	name := w.opts.TypeName(ed)
	kind := w.kindOf(ed)
	for i := 0; i < v.Len(); i++ {
		c, err := n.Add(name, kind)
		if err != nil {
			return err
		}
		if err := w.write(ed, nil, v.Index(i), c); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) writeDictionary(d *typecache.Descriptor, v reflect.Value, n *node.Node) error {
	if err := n.SetKind(node.ObjectKind); err != nil {
		return err
	}
	kd, vd := d.DictionaryTypes()
	if !kd.IsScalar {
		return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: "dictionary key is not a scalar"}
	}
	if v.IsNil() {
		return nil
	}
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := formatScalar(kd, iter.Key())
		if err != nil {
			return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: err.Error()}
		}
		entries = append(entries, entry{k, iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.key, b.key)
	})
	kind := w.kindOf(vd)
	return w.enter(d, v, n, func() error {
		for _, ent := range entries {
			c, err := n.Add(ent.key, kind)
			if err != nil {
				return err
			}
			if err := w.write(vd, nil, ent.val, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *writer) writeStruct(d *typecache.Descriptor, v reflect.Value, n *node.Node) error {
	if err := n.SetKind(node.ObjectKind); err != nil {
		return err
	}
	for _, m := range d.Members() {
		if m.Ignore || !m.CanRead {
			continue
		}
		md := m.Descriptor()
		if w.opts.Excluded(md) {
			continue
		}
		fv, ok := m.Get(v)
		if !ok {
			continue
		}
		c, err := n.Add(w.opts.MemberName(m), w.kindOf(md))
		if err != nil {
			return err
		}
		if err := w.write(md, m, fv, c); err != nil {
			return err
		}
	}
	return nil
}
