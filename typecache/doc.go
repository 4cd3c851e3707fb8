// Package typecache introspects Go types once and memoizes what the
// binding engine needs to know about them.
//
// A Descriptor classifies a type (scalar, enum, nullable pointer, list,
// dictionary, struct, placeholder), relates it to its element, key and
// underlying types, lists its serializable members and binds accessors
// for member get/set and method calls. A Cache hands out exactly one
// Descriptor per reflect.Type:
//
//	d := typecache.For[Order]()
//	for _, m := range d.Members() {
//	    v, ok := m.Get(reflect.ValueOf(order))
//	    ...
//	}
//
// Members come from exported struct fields, with embedded structs
// flattened. The docmap struct tag renames or skips a member:
//
//	type Order struct {
//	    ID    int    `docmap:"name=id"`
//	    Cache []byte `docmap:"omit"`
//	}
//
// Type level metadata is attached with an anonymous Meta field.
package typecache
