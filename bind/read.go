package bind

import (
	"fmt"
	"reflect"

	"github.com/signadot/docmap/debug"
	"github.com/signadot/docmap/node"
	"github.com/signadot/docmap/typecache"
)

// Deserialize reads the document rooted at n into v, which must be a
// non-nil pointer. v is only assigned when the whole document was read.
func (e *Engine) Deserialize(n *node.Node, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &TypeError{Type: fmt.Sprintf("%T", v), Message: "destination must be a non-nil pointer"}
	}
	d := e.opts.cache.Get(rv.Type().Elem())
	if !e.opts.ignoreRootName {
		if name, ok := n.Name(); ok {
			if want := e.opts.TypeName(d); name != want {
				return &UnmatchedElementError{Path: n.Path(), Name: name, Expected: want}
			}
		}
	}
	dst := reflect.New(d.Type).Elem()
	if err := e.read(d, nil, n, dst); err != nil {
		return err
	}
	rv.Elem().Set(dst)
	return nil
}

// read fills dst, a settable and addressable value of type d, from n.
func (e *Engine) read(d *typecache.Descriptor, m *typecache.Member, n *node.Node, dst reflect.Value) error {
	if debug.Traverse() {
		debug.Logf("read %s <- %s", d.FriendlyName, n.Path())
	}
	if fn := e.opts.reader(d.Type); fn != nil {
		return e.readCustom(fn, d, m, n, dst)
	}
	if d.IsNullable {
		return e.readPointer(d, m, n, dst)
	}
	if !d.IsInterface && d.Implements(nodeUnmarshalerType) {
		return e.readHook(d, n, dst)
	}
	switch {
	case d.IsPlaceholder:
		dst.Set(reflect.ValueOf(n))
		return nil
	case d.IsUnsupported, d.IsInterface:
		return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: "no document form"}
	case d.IsScalar:
		return e.readScalar(d, n, dst)
	case d.IsList:
		return e.readList(d, n, dst)
	case d.IsDictionary:
		return e.readDictionary(d, n, dst)
	case d.IsStruct:
		return e.readStruct(d, n, dst)
	}
	return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: "no document form"}
}

func (e *Engine) readCustom(fn ReadFunc, d *typecache.Descriptor, m *typecache.Member, n *node.Node, dst reflect.Value) error {
	x, err := fn(e.opts, m, n)
	if err != nil {
		return wrapRead(d, n, err)
	}
	if x == nil {
		dst.Set(reflect.Zero(d.Type))
		return nil
	}
	xv := reflect.ValueOf(x)
	if !xv.Type().AssignableTo(d.Type) {
		return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: fmt.Sprintf("reader returned %T", x)}
	}
	dst.Set(xv)
	return nil
}

// readPointer reads null, or an empty value for a non-string scalar, as
// nil.
func (e *Engine) readPointer(d *typecache.Descriptor, m *typecache.Member, n *node.Node, dst reflect.Value) error {
	u := d.Underlying()
	if n.IsNull() {
		dst.Set(reflect.Zero(d.Type))
		return nil
	}
	if n.Kind() == node.ValueKind && u.IsScalar && !acceptsEmpty(u) {
		if s, _ := n.Value(); s == "" {
			dst.Set(reflect.Zero(d.Type))
			return nil
		}
	}
	p := reflect.New(u.Type)
	if err := e.read(u, m, n, p.Elem()); err != nil {
		return err
	}
	dst.Set(p)
	return nil
}

func (e *Engine) readHook(d *typecache.Descriptor, n *node.Node, dst reflect.Value) error {
	acc, err := d.Accessor("UnmarshalNode", nodeType)
	if err != nil {
		return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: err.Error()}
	}
	out := acc.Call(dst, reflect.ValueOf(n))
	if err, _ := out[0].Interface().(error); err != nil {
		return wrapRead(d, n, err)
	}
	return nil
}

func (e *Engine) readScalar(d *typecache.Descriptor, n *node.Node, dst reflect.Value) error {
	s, err := n.Value()
	if err != nil {
		return err
	}
	if s == "" && !acceptsEmpty(d) {
		if e.opts.defaultEmptyScalars {
			dst.Set(reflect.Zero(d.Type))
			return nil
		}
		return &ParseError{Path: n.Path(), Type: d.FriendlyName, Err: errEmpty}
	}
	if err := parseScalar(d, s, dst); err != nil {
		return &ParseError{Path: n.Path(), Type: d.FriendlyName, Value: s, Err: err}
	}
	return nil
}

func (e *Engine) readList(d *typecache.Descriptor, n *node.Node, dst reflect.Value) error {
	if n.IsNull() {
		return nil
	}
	if err := n.Expect(node.ArrayKind); err != nil {
		return err
	}
	children, err := n.Children()
	if err != nil {
		return err
	}
	ed := d.Elem()
	want := e.opts.TypeName(ed)
	var list reflect.Value
	if !d.IsArray {
		list = reflect.MakeSlice(d.Type, 0, len(children))
	}
	i := 0
	for _, c := range children {
		if name, ok := c.Name(); ok && name != want {
			if e.opts.ignoreUnmatched {
				continue
			}
			return &UnmatchedElementError{Path: c.Path(), Name: name, Expected: want}
		}
		if d.IsArray {
			if i >= dst.Len() {
				return &ParseError{Path: c.Path(), Type: d.FriendlyName, Err: fmt.Errorf("more than %d elements", dst.Len())}
			}
			if err := e.read(ed, nil, c, dst.Index(i)); err != nil {
				return err
			}
			i++
			continue
		}
		elem := reflect.New(ed.Type).Elem()
		if err := e.read(ed, nil, c, elem); err != nil {
			return err
		}
		list = reflect.Append(list, elem)
	}
	if !d.IsArray {
		dst.Set(list)
	}
	return nil
}

func (e *Engine) readDictionary(d *typecache.Descriptor, n *node.Node, dst reflect.Value) error {
	if n.IsNull() {
		return nil
	}
	if err := n.Expect(node.ObjectKind); err != nil {
		return err
	}
	children, err := n.Children()
	if err != nil {
		return err
	}
	kd, vd := d.DictionaryTypes()
	if !kd.IsScalar {
		return &TypeError{Path: n.Path(), Type: d.FriendlyName, Message: "dictionary key is not a scalar"}
	}
	res := reflect.MakeMapWithSize(d.Type, len(children))
	for _, c := range children {
		name, _ := c.Name()
		key := reflect.New(kd.Type).Elem()
		if err := parseScalar(kd, name, key); err != nil {
			return &ParseError{Path: c.Path(), Type: kd.FriendlyName, Value: name, Err: err}
		}
		val := reflect.New(vd.Type).Elem()
		if err := e.read(vd, nil, c, val); err != nil {
			return err
		}
		res.SetMapIndex(key, val)
	}
	dst.Set(res)
	return nil
}

func (e *Engine) readStruct(d *typecache.Descriptor, n *node.Node, dst reflect.Value) error {
	if n.IsNull() {
		return nil
	}
	if err := n.Expect(node.ObjectKind); err != nil {
		return err
	}
	children, err := n.Children()
	if err != nil {
		return err
	}
	index := e.members(d)
	lenient := e.opts.ignoreUnmatched || d.HasAttribute("allowExtra")
	for _, c := range children {
		name, _ := c.Name()
		m := index[name]
		if m == nil {
			if lenient {
				continue
			}
			return &UnmatchedElementError{Path: c.Path(), Name: name, Expected: d.FriendlyName}
		}
		if m.Ignore || !m.CanWrite {
			continue
		}
		md := m.Descriptor()
		if e.opts.Excluded(md) {
			continue
		}
		val := reflect.New(m.Type).Elem()
		if err := e.read(md, m, c, val); err != nil {
			return err
		}
		if err := m.Set(dst, val); err != nil {
			return &TypeError{Path: c.Path(), Type: d.FriendlyName, Message: err.Error()}
		}
	}
	return nil
}

// wrapRead attaches the node path to errors from user code unless they
// already carry one.
func wrapRead(d *typecache.Descriptor, n *node.Node, err error) error {
	switch err.(type) {
	case *ParseError, *UnmatchedElementError, *TypeError, *node.ShapeError, *node.ReadOnlyError:
		return err
	}
	s, _ := n.Value()
	return &ParseError{Path: n.Path(), Type: d.FriendlyName, Value: s, Err: err}
}
