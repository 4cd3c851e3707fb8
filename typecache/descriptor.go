package typecache

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
	durationType        = reflect.TypeFor[time.Duration]()
	bytesType           = reflect.TypeFor[[]byte]()
	metaType            = reflect.TypeFor[Meta]()
)

// Meta marks a struct field whose tag carries type level metadata:
//
//	type User struct {
//	    typecache.Meta `docmap:"name=person,allowExtra"`
//	    Name string
//	}
type Meta struct{}

// Descriptor holds the facts about one Go type that the binding engine
// needs. Descriptors are built once per type by a Cache and never change
// afterwards; derived relations and members are computed on first use.
type Descriptor struct {
	Type reflect.Type
	Kind reflect.Kind

	// Name is the short type name without package or type arguments,
	// empty for unnamed types.
	Name string
	// FullName is the package-qualified name, or the type literal for
	// unnamed types.
	FullName string
	// FriendlyName is the type string without package qualifiers,
	// e.g. "Page[User]".
	FriendlyName string
	// GenericBaseName is FriendlyName without type arguments.
	GenericBaseName string

	IsScalar   bool
	IsText     bool
	IsDuration bool
	IsBytes    bool
	IsEnum     bool
	IsNullable bool
	IsArray    bool
	IsGeneric  bool

	// IsList holds for slices and arrays other than []byte.
	IsList bool
	// IsGenericList holds for lists with a concrete element type,
	// IsNonGenericList for lists of interface values.
	IsGenericList    bool
	IsNonGenericList bool

	IsDictionary           bool
	IsGenericDictionary    bool
	IsNonGenericDictionary bool

	// IsEnumerable holds for every kind that can be ranged over element
	// by element: lists, dictionaries.
	IsEnumerable bool

	IsStruct bool
	// IsPlaceholder holds for the empty interface, which receives raw
	// nodes.
	IsPlaceholder bool
	IsInterface   bool
	// IsUnsupported holds for kinds with no document form.
	IsUnsupported bool

	cache *Cache

	elem        func() *Descriptor
	key         func() *Descriptor
	underlying  func() *Descriptor
	genericArgs []string
	members     func() []*Member
	byName      func() map[string]*Member
	attributes  func() map[string]string

	accessors  sync.Map // accessorKey -> *Accessor
	implements sync.Map // reflect.Type -> bool
}

func newDescriptor(c *Cache, t reflect.Type) *Descriptor {
	d := &Descriptor{
		Type:         t,
		Kind:         t.Kind(),
		Name:         stripTypeParams(t.Name()),
		FullName:     fullName(t),
		FriendlyName: stripQualifiers(t.String()),
		cache:        c,
	}
	d.GenericBaseName = stripTypeParams(d.FriendlyName)
	d.IsGeneric = t.Name() != "" && d.GenericBaseName != d.FriendlyName
	if d.IsGeneric {
		d.genericArgs = typeArgs(d.FriendlyName)
	}
	d.classify()

	d.elem = sync.OnceValue(func() *Descriptor {
		switch d.Kind {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.Pointer:
			return c.Get(t.Elem())
		}
		return nil
	})
	d.key = sync.OnceValue(func() *Descriptor {
		if d.Kind == reflect.Map {
			return c.Get(t.Key())
		}
		return nil
	})
	d.underlying = sync.OnceValue(func() *Descriptor {
		if d.Kind == reflect.Pointer {
			return c.Get(t.Elem())
		}
		return d
	})
	d.members = sync.OnceValue(func() []*Member {
		return buildMembers(d)
	})
	d.byName = sync.OnceValue(func() map[string]*Member {
		res := make(map[string]*Member)
		ambiguous := map[string]int{}
		for _, m := range d.members() {
			prev, ok := res[m.Name]
			switch {
			case !ok:
				if depth, dup := ambiguous[m.Name]; dup && depth <= m.depth {
					continue
				}
				res[m.Name] = m
			case m.depth < prev.depth:
				res[m.Name] = m
			case m.depth == prev.depth:
				delete(res, m.Name)
				ambiguous[m.Name] = m.depth
			}
		}
		return res
	})
	d.attributes = sync.OnceValue(func() map[string]string {
		return buildAttributes(t)
	})
	return d
}

func (d *Descriptor) classify() {
	t := d.Type
	ptr := reflect.PointerTo(t)
	d.IsText = d.Kind != reflect.Pointer && d.Kind != reflect.Interface &&
		(t.Implements(textMarshalerType) || ptr.Implements(textMarshalerType)) &&
		ptr.Implements(textUnmarshalerType)
	d.IsDuration = t == durationType
	d.IsBytes = t == bytesType

	switch d.Kind {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		d.IsScalar = true
	}
	if d.IsText || d.IsBytes {
		d.IsScalar = true
	}
	d.IsEnum = t.PkgPath() != "" && isInteger(d.Kind) && t.Implements(stringerType)

	switch d.Kind {
	case reflect.Pointer:
		d.IsNullable = true
	case reflect.Slice, reflect.Array:
		if d.IsScalar {
			break
		}
		d.IsArray = d.Kind == reflect.Array
		d.IsList = true
		d.IsEnumerable = true
		if t.Elem().Kind() == reflect.Interface {
			d.IsNonGenericList = true
		} else {
			d.IsGenericList = true
		}
	case reflect.Map:
		if d.IsScalar {
			break
		}
		d.IsDictionary = true
		d.IsEnumerable = true
		if t.Elem().Kind() == reflect.Interface {
			d.IsNonGenericDictionary = true
		} else {
			d.IsGenericDictionary = true
		}
	case reflect.Struct:
		d.IsStruct = !d.IsScalar
	case reflect.Interface:
		d.IsInterface = true
		d.IsPlaceholder = t.NumMethod() == 0
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Uintptr, reflect.Invalid:
		d.IsUnsupported = true
	}
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// Elem is the element type of a list, the value type of a dictionary or
// the target of a pointer. It is nil for other kinds.
func (d *Descriptor) Elem() *Descriptor { return d.elem() }

// Key is the key type of a dictionary, nil otherwise.
func (d *Descriptor) Key() *Descriptor { return d.key() }

// DictionaryTypes returns the key and value types of a dictionary.
func (d *Descriptor) DictionaryTypes() (key, value *Descriptor) {
	if !d.IsDictionary {
		return nil, nil
	}
	return d.key(), d.elem()
}

// Underlying unwraps a nullable pointer; other types return themselves.
func (d *Descriptor) Underlying() *Descriptor { return d.underlying() }

// GenericArgs returns the friendly names of the type arguments of an
// instantiated generic type, in order.
func (d *Descriptor) GenericArgs() []string {
	return append([]string(nil), d.genericArgs...)
}

// Members returns the serializable members of a struct type, in
// declaration order with embedded structs flattened.
func (d *Descriptor) Members() []*Member { return d.members() }

// Member returns the member with Go field name name. As in Go selectors,
// the shallowest field wins and a tie at the same depth resolves to none.
func (d *Descriptor) Member(name string) (*Member, bool) {
	m, ok := d.byName()[name]
	return m, ok
}

// Attribute returns type level metadata set through a Meta field tag.
func (d *Descriptor) Attribute(key string) (string, bool) {
	v, ok := d.attributes()[key]
	return v, ok
}

func (d *Descriptor) HasAttribute(key string) bool {
	_, ok := d.attributes()[key]
	return ok
}

// FindAttribute returns the first attribute, in key order, accepted by pred.
func (d *Descriptor) FindAttribute(pred func(key, value string) bool) (string, string, bool) {
	attrs := d.attributes()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if pred(k, attrs[k]) {
			return k, attrs[k], true
		}
	}
	return "", "", false
}

// Implements reports whether the type or a pointer to it implements
// iface. Results are memoized per interface.
func (d *Descriptor) Implements(iface reflect.Type) bool {
	if v, ok := d.implements.Load(iface); ok {
		return v.(bool)
	}
	res := d.Type.Implements(iface) || (d.Kind != reflect.Pointer && reflect.PointerTo(d.Type).Implements(iface))
	d.implements.Store(iface, res)
	return res
}

// New allocates a zero value of the type and returns a pointer to it.
func (d *Descriptor) New() reflect.Value {
	return reflect.New(d.Type)
}

func (d *Descriptor) String() string {
	return d.FullName
}

func buildAttributes(t reflect.Type) map[string]string {
	res := map[string]string{}
	if t.Kind() != reflect.Struct {
		return res
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous || f.Type != metaType {
			continue
		}
		parsed, err := ParseTag(f.Tag.Get(TagKey))
		if err != nil {
			continue
		}
		for k, v := range parsed {
			res[k] = v
		}
	}
	return res
}
