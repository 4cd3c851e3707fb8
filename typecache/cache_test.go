package typecache

import (
	"reflect"
	"runtime"
	"sync"
	"testing"
)

type c0 struct{ A int }
type c1 struct{ B []c0 }
type c2 struct{ C map[string]*c1 }
type c3 struct{ D *c3 }

func TestCacheIdentity(t *testing.T) {
	c := NewCache()
	typ := reflect.TypeOf(c1{})
	d1 := c.Get(typ)
	d2 := c.Get(typ)
	if d1 != d2 {
		t.Fatalf("expected the same descriptor instance")
	}
	if c.Get(reflect.TypeOf(c0{})) != d1.Members()[0].Descriptor().Elem() {
		t.Errorf("element descriptor is not the cached instance")
	}
	if Of(typ) == d1 {
		t.Errorf("independent caches must not share descriptors")
	}
	if For[c1]() != Of(typ) {
		t.Errorf("For and Of disagree")
	}
}

// TestCacheConcurrentFirstAccess verifies that concurrent first requests
// for the same types publish a single descriptor per type.
func TestCacheConcurrentFirstAccess(t *testing.T) {
	c := NewCache()
	types := []reflect.Type{
		reflect.TypeOf(c0{}), reflect.TypeOf(c1{}), reflect.TypeOf(c2{}),
		reflect.TypeOf(c3{}), reflect.TypeOf([]c0{}), reflect.TypeOf(map[string]int{}),
	}
	workers := runtime.GOMAXPROCS(0) * 4
	results := make([][]*Descriptor, workers)
	start := make(chan struct{})
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			<-start
			res := make([]*Descriptor, len(types))
			for i := range types {
				j := (i + id) % len(types)
				res[j] = c.Get(types[j])
				_ = res[j].Members()
				_ = res[j].Elem()
			}
			results[id] = res
		}(w)
	}
	close(start)
	wg.Wait()

	for w := 1; w < workers; w++ {
		for i := range types {
			if results[w][i] != results[0][i] {
				t.Fatalf("worker %d saw a different descriptor for %s", w, types[i])
			}
		}
	}
	if c.Len() < len(types) {
		t.Errorf("Len() = %d, want at least %d", c.Len(), len(types))
	}
	n := 0
	c.Range(func(*Descriptor) bool { n++; return true })
	if n != c.Len() {
		t.Errorf("Range visited %d, Len() = %d", n, c.Len())
	}
}

func TestRecursiveType(t *testing.T) {
	c := NewCache()
	d := c.Get(reflect.TypeOf(c3{}))
	m := d.Members()[0]
	if m.Descriptor().Underlying() != d {
		t.Errorf("recursive member does not resolve to the same descriptor")
	}
}
