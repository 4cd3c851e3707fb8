package typecache

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/signadot/docmap/debug"
)

// Cache maps types to their descriptors. Descriptors are created on first
// request and never evicted; concurrent first requests for one type may
// both build a descriptor, but only one is ever published.
type Cache struct {
	m     sync.Map // reflect.Type -> *Descriptor
	count atomic.Int64
}

func NewCache() *Cache {
	return &Cache{}
}

var defaultCache = NewCache()

// Default returns the process-wide cache.
func Default() *Cache {
	return defaultCache
}

// Of returns the descriptor of t from the process-wide cache.
func Of(t reflect.Type) *Descriptor {
	return defaultCache.Get(t)
}

// For returns the descriptor of T from the process-wide cache.
func For[T any]() *Descriptor {
	return defaultCache.Get(reflect.TypeFor[T]())
}

// Get returns the descriptor for t, building it on first use. The same
// instance is returned for t on every call.
func (c *Cache) Get(t reflect.Type) *Descriptor {
	if t == nil {
		return nil
	}
	if d, ok := c.m.Load(t); ok {
		return d.(*Descriptor)
	}
	d := newDescriptor(c, t)
	actual, loaded := c.m.LoadOrStore(t, d)
	if !loaded {
		c.count.Add(1)
		if debug.Cache() {
			debug.Logf("descriptor %s built", d.FullName)
		}
	}
	return actual.(*Descriptor)
}

// Len returns the number of cached descriptors.
func (c *Cache) Len() int {
	return int(c.count.Load())
}

// Range calls f for each cached descriptor, in no particular order.
func (c *Cache) Range(f func(d *Descriptor) bool) {
	c.m.Range(func(_, v any) bool {
		return f(v.(*Descriptor))
	})
}
