package format

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/signadot/docmap/bind"
	"github.com/signadot/docmap/debug"
	"github.com/signadot/docmap/node"
)

// Adapter converts between document bytes of one format and node trees.
type Adapter interface {
	Format() Format
	// Parse returns the root node of data.
	Parse(data []byte) (*node.Node, error)
	// Render returns the bytes of the document rooted at root.
	Render(root *node.Node) ([]byte, error)
	// NewRoot returns an empty root to serialize into. Formats without
	// named roots ignore name.
	NewRoot(name string) *node.Node
}

var (
	mu       sync.RWMutex
	adapters = map[Format]Adapter{}
)

func init() {
	Register(xmlAdapter{})
	Register(formAdapter{})
	Register(yamlAdapter{})
	Register(jsonAdapter{})
}

// Register makes a available under a.Format(), replacing any previous
// adapter for that format.
func Register(a Adapter) {
	mu.Lock()
	defer mu.Unlock()
	adapters[a.Format()] = a
}

func For(f Format) (Adapter, error) {
	mu.RLock()
	defer mu.RUnlock()
	a, ok := adapters[f]
	if !ok {
		return nil, fmt.Errorf("%w: no adapter for %s", ErrBadFormat, f)
	}
	return a, nil
}

// Marshal serializes v with e into a document of format f.
func Marshal(e *bind.Engine, f Format, v any) ([]byte, error) {
	a, err := For(f)
	if err != nil {
		return nil, err
	}
	name := ""
	if v != nil {
		name = e.RootName(reflect.TypeOf(v))
	}
	root := a.NewRoot(name)
	if err := e.Serialize(v, root); err != nil {
		return nil, err
	}
	return a.Render(root)
}

// Unmarshal deserializes the document data of format f into v with e.
func Unmarshal(e *bind.Engine, f Format, data []byte, v any) error {
	a, err := For(f)
	if err != nil {
		return err
	}
	root, err := a.Parse(data)
	if err != nil {
		return err
	}
	return e.Deserialize(root, v)
}

// Convert parses data in one format and renders it in another.
func Convert(from, to Format, data []byte) ([]byte, error) {
	in, err := For(from)
	if err != nil {
		return nil, err
	}
	out, err := For(to)
	if err != nil {
		return nil, err
	}
	src, err := in.Parse(data)
	if err != nil {
		return nil, err
	}
	name, _ := src.Name()
	dst := out.NewRoot(name)
	if err := dst.CopyFrom(src); err != nil {
		return nil, err
	}
	if debug.Format() {
		debug.Logf("convert %s -> %s: %d bytes", from, to, len(data))
	}
	return out.Render(dst)
}
