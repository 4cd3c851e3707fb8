package typecache

import (
	"fmt"
	"reflect"

	"github.com/signadot/docmap/debug"
)

type AccessorKind int

const (
	Getter AccessorKind = iota
	Setter
	Method
)

func (k AccessorKind) String() string {
	switch k {
	case Getter:
		return "getter"
	case Setter:
		return "setter"
	case Method:
		return "method"
	default:
		return "<unknown accessor>"
	}
}

// Accessor is a bound member getter, member setter or method invoker.
type Accessor struct {
	Name string
	Kind AccessorKind
	In   []reflect.Type
	Out  []reflect.Type

	call func(recv reflect.Value, args []reflect.Value) []reflect.Value
}

// Call invokes the accessor on recv. Setters and methods with pointer
// receivers need an addressable recv.
func (a *Accessor) Call(recv reflect.Value, args ...reflect.Value) []reflect.Value {
	return a.call(recv, args)
}

// maxKeyArgs bounds the signatures that are memoized; longer signatures
// are bound on every call.
const maxKeyArgs = 4

type accessorKey struct {
	name  string
	arity int
	args  [maxKeyArgs]reflect.Type
}

// Accessor returns the accessor for name with the given argument types.
// A member name with no arguments yields its getter, with one argument
// its setter; any other name is resolved as a method of the type or of
// a pointer to it. Bindings are memoized per (name, signature).
func (d *Descriptor) Accessor(name string, args ...reflect.Type) (*Accessor, error) {
	if len(args) > maxKeyArgs {
		return d.bind(name, args)
	}
	key := accessorKey{name: name, arity: len(args)}
	copy(key.args[:], args)
	if a, ok := d.accessors.Load(key); ok {
		return a.(*Accessor), nil
	}
	a, err := d.bind(name, args)
	if err != nil {
		return nil, err
	}
	actual, loaded := d.accessors.LoadOrStore(key, a)
	if !loaded && debug.Cache() {
		debug.Logf("bound %s %s.%s%v", a.Kind, d.FullName, name, args)
	}
	return actual.(*Accessor), nil
}

func (d *Descriptor) bind(name string, args []reflect.Type) (*Accessor, error) {
	if m, ok := d.Member(name); ok && len(args) <= 1 {
		if len(args) == 0 {
			return m.getter(), nil
		}
		if !args[0].AssignableTo(m.Type) {
			return nil, fmt.Errorf("cannot assign %s to %s.%s of type %s", args[0], d.FullName, name, m.Type)
		}
		if !m.CanWrite {
			return nil, fmt.Errorf("%s.%s is not writable", d.FullName, name)
		}
		return m.setter(), nil
	}
	return d.bindMethod(name, args)
}

func memberGetter(m *Member) *Accessor {
	index := m.Index
	return &Accessor{
		Name: m.Name,
		Kind: Getter,
		Out:  []reflect.Type{m.Type},
		call: func(recv reflect.Value, _ []reflect.Value) []reflect.Value {
			recv = reflect.Indirect(recv)
			f, err := recv.FieldByIndexErr(index)
			if err != nil {
				return []reflect.Value{{}}
			}
			return []reflect.Value{f}
		},
	}
}

func memberSetter(m *Member) *Accessor {
	index := m.Index
	return &Accessor{
		Name: m.Name,
		Kind: Setter,
		In:   []reflect.Type{m.Type},
		call: func(recv reflect.Value, args []reflect.Value) []reflect.Value {
			recv = reflect.Indirect(recv)
			f := recv
			for i, x := range index {
				if i > 0 && f.Kind() == reflect.Pointer {
					if f.IsNil() {
						f.Set(reflect.New(f.Type().Elem()))
					}
					f = f.Elem()
				}
				f = f.Field(x)
			}
			f.Set(args[0])
			return nil
		},
	}
}

func (d *Descriptor) bindMethod(name string, args []reflect.Type) (*Accessor, error) {
	recvType := d.Type
	if d.Kind != reflect.Pointer {
		recvType = reflect.PointerTo(d.Type)
	}
	method, ok := recvType.MethodByName(name)
	if !ok {
		return nil, fmt.Errorf("%s has no member or method %q", d.FullName, name)
	}
	mt := method.Type
	if mt.NumIn()-1 != len(args) {
		return nil, fmt.Errorf("%s.%s takes %d arguments, got %d", d.FullName, name, mt.NumIn()-1, len(args))
	}
	in := make([]reflect.Type, len(args))
	for i, a := range args {
		in[i] = mt.In(i + 1)
		if !a.AssignableTo(in[i]) {
			return nil, fmt.Errorf("%s.%s argument %d: cannot use %s as %s", d.FullName, name, i, a, in[i])
		}
	}
	out := make([]reflect.Type, mt.NumOut())
	for i := range out {
		out[i] = mt.Out(i)
	}
	index := method.Index
	pointerType := d.Kind == reflect.Pointer
	return &Accessor{
		Name: name,
		Kind: Method,
		In:   in,
		Out:  out,
		call: func(recv reflect.Value, args []reflect.Value) []reflect.Value {
			if !pointerType {
				if recv.Kind() != reflect.Pointer {
					recv = recv.Addr()
				}
			}
			return recv.Method(index).Call(args)
		},
	}, nil
}
