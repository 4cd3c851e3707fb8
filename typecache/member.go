package typecache

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/signadot/docmap/debug"
)

// Member describes one serializable struct field.
type Member struct {
	// Name is the Go field name.
	Name string
	// WireName is the explicit name from a `docmap:"name=..."` tag, empty
	// when the naming policy decides.
	WireName string
	Type     reflect.Type
	// Index is the field index path from the owning struct, through
	// flattened embedded structs.
	Index []int
	// Ignore is set by a `docmap:"omit"` or `docmap:"-"` tag.
	Ignore bool
	// Tags holds every key of the member's docmap tag.
	Tags map[string]string

	CanRead  bool
	CanWrite bool

	Owner *Descriptor
	depth int

	getter func() *Accessor
	setter func() *Accessor
}

func newMember(m *Member) *Member {
	m.getter = sync.OnceValue(func() *Accessor { return memberGetter(m) })
	m.setter = sync.OnceValue(func() *Accessor { return memberSetter(m) })
	return m
}

// key is the name members compete for: the tag name, or the Go name.
func (m *Member) key() string {
	if m.WireName != "" {
		return m.WireName
	}
	return m.Name
}

// Descriptor returns the descriptor of the member's declared type.
func (m *Member) Descriptor() *Descriptor {
	return m.Owner.cache.Get(m.Type)
}

// HasTag reports whether the member's docmap tag has key.
func (m *Member) HasTag(key string) bool {
	_, ok := m.Tags[key]
	return ok
}

// Get reads the member from a struct value through its memoized getter,
// bound to the member's own index path. ok is false when an embedded
// pointer on the path is nil.
func (m *Member) Get(v reflect.Value) (reflect.Value, bool) {
	res := m.getter().Call(v)
	if len(res) == 0 || !res[0].IsValid() {
		return reflect.Value{}, false
	}
	return res[0], true
}

// Set assigns x to the member of the addressable struct value v,
// allocating nil embedded pointers on the way.
func (m *Member) Set(v reflect.Value, x reflect.Value) error {
	if !m.CanWrite {
		return fmt.Errorf("%s.%s is not writable", m.Owner.FullName, m.Name)
	}
	if !x.Type().AssignableTo(m.Type) {
		return fmt.Errorf("cannot assign %s to %s.%s of type %s", x.Type(), m.Owner.FullName, m.Name, m.Type)
	}
	m.setter().Call(v, x)
	return nil
}

func buildMembers(d *Descriptor) []*Member {
	if d.Kind != reflect.Struct || d.IsScalar {
		return nil
	}
	var all []*Member
	collectMembers(d, d.Type, nil, 0, true, &all)
	res := dominantMembers(all)
	if debug.Cache() {
		debug.Logf("members of %s: %d", d.FullName, len(res))
	}
	return res
}

// dominantMembers keeps, for each wire key, the shallowest member. Ties at
// the same depth go to the only tagged member, or drop the key entirely.
// The result stays in index order.
func dominantMembers(all []*Member) []*Member {
	byKey := map[string][]*Member{}
	for _, m := range all {
		byKey[m.key()] = append(byKey[m.key()], m)
	}
	res := make([]*Member, 0, len(all))
	for _, m := range all {
		if dominant(byKey[m.key()]) == m {
			res = append(res, m)
		}
	}
	return res
}

func dominant(ms []*Member) *Member {
	if len(ms) == 1 {
		return ms[0]
	}
	depth := ms[0].depth
	for _, m := range ms[1:] {
		depth = min(depth, m.depth)
	}
	var top, tagged []*Member
	for _, m := range ms {
		if m.depth != depth {
			continue
		}
		top = append(top, m)
		if m.WireName != "" {
			tagged = append(tagged, m)
		}
	}
	switch {
	case len(top) == 1:
		return top[0]
	case len(tagged) == 1:
		return tagged[0]
	}
	return nil
}

func collectMembers(d *Descriptor, t reflect.Type, index []int, depth int, writable bool, res *[]*Member) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == metaType {
			continue
		}
		fi := append(append([]int(nil), index...), i)
		parsed, err := ParseTag(f.Tag.Get(TagKey))
		if err != nil {
			parsed = map[string]string{}
		}
		_, renamed := parsed["name"]

		if f.Anonymous && !renamed {
			ft := f.Type
			ptr := ft.Kind() == reflect.Pointer
			if ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && !d.cache.Get(ft).IsScalar {
				// fields promoted through an unexported embedded pointer
				// cannot be allocated from outside the package
				w := writable && (!ptr || f.IsExported())
				collectMembers(d, ft, fi, depth+1, w, res)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}

		m := newMember(&Member{
			Name:     f.Name,
			WireName: parsed["name"],
			Type:     f.Type,
			Index:    fi,
			Tags:     parsed,
			CanRead:  true,
			CanWrite: writable,
			Owner:    d,
			depth:    depth,
		})
		if _, ok := parsed["omit"]; ok {
			m.Ignore = true
		}
		if _, ok := parsed["-"]; ok {
			m.Ignore = true
		}
		*res = append(*res, m)
	}
}
