package bind

import (
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"

	"github.com/signadot/docmap/typecache"
)

// Naming maps a Go type or member name to a wire name.
type Naming func(string) string

var (
	Identity   Naming = func(s string) string { return s }
	SnakeCase  Naming = strcase.SnakeCase
	KebabCase  Naming = strcase.KebabCase
	LowerCamel Naming = strcase.LowerCamelCase
	UpperCamel Naming = strcase.UpperCamelCase
)

// ParseNaming returns the naming policy called name.
func ParseNaming(name string) (Naming, error) {
	switch strings.ToLower(name) {
	case "", "identity", "none":
		return Identity, nil
	case "snake":
		return SnakeCase, nil
	case "kebab":
		return KebabCase, nil
	case "lowercamel", "camel":
		return LowerCamel, nil
	case "uppercamel", "pascal":
		return UpperCamel, nil
	}
	return nil, fmt.Errorf("unknown naming policy %q", name)
}

// TypeName returns the wire name of a type. An explicit `name=` attribute
// wins; lists, dictionaries and instantiated generic types use the
// configured name templates.
func (o *Options) TypeName(d *typecache.Descriptor) string {
	if v, ok := d.Attribute("name"); ok && v != "" {
		return v
	}
	switch {
	case d.IsNullable:
		return o.TypeName(d.Underlying())
	case d.IsBytes && d.Name == "":
		return o.typeNaming("Bytes")
	case d.IsList && d.Name == "":
		return fmt.Sprintf(o.listFormat, o.TypeName(d.Elem()))
	case d.IsDictionary && d.Name == "":
		k, v := d.DictionaryTypes()
		return fmt.Sprintf(o.dictFormat, o.TypeName(k), o.TypeName(v))
	case d.IsGeneric:
		return o.genericName(d.GenericBaseName, d.GenericArgs())
	case d.IsPlaceholder:
		return o.typeNaming("Any")
	case d.Name == "":
		return o.typeNaming("Object")
	}
	return o.typeNaming(builtinName(d.Name))
}

var predeclared = map[string]bool{
	"bool": true, "string": true, "error": true, "byte": true, "rune": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}

// builtinName capitalizes predeclared type names: string -> String.
func builtinName(s string) string {
	if !predeclared[s] {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (o *Options) genericName(base string, args []string) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = o.argName(a)
	}
	return fmt.Sprintf(o.genericFormat, o.typeNaming(base), strings.Join(names, "And"))
}

// argName derives a wire name from a type argument as it appears in an
// instantiated type name, e.g. "[]User" or "map[string]Page[int]".
func (o *Options) argName(a string) string {
	switch {
	case strings.HasPrefix(a, "*"):
		return o.argName(a[1:])
	case a == "[]uint8":
		return o.typeNaming("Bytes")
	case strings.HasPrefix(a, "[]"):
		return fmt.Sprintf(o.listFormat, o.argName(a[2:]))
	case strings.HasPrefix(a, "["):
		if i := strings.IndexByte(a, ']'); i > 0 {
			return fmt.Sprintf(o.listFormat, o.argName(a[i+1:]))
		}
	case strings.HasPrefix(a, "map["):
		depth := 0
		for i := 3; i < len(a); i++ {
			switch a[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return fmt.Sprintf(o.dictFormat, o.argName(a[4:i]), o.argName(a[i+1:]))
				}
			}
		}
	case a == "interface {}" || a == "any":
		return o.typeNaming("Any")
	}
	if i := strings.IndexByte(a, '['); i > 0 && strings.HasSuffix(a, "]") {
		return o.genericName(a[:i], splitArgs(a[i+1:len(a)-1]))
	}
	return o.typeNaming(builtinName(a))
}

func splitArgs(s string) []string {
	var res []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				res = append(res, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(res, strings.TrimSpace(s[start:]))
}

// MemberName returns the wire name of a member: its `name=` tag, or the
// member naming policy applied to the field name.
func (o *Options) MemberName(m *typecache.Member) string {
	if m.WireName != "" {
		return m.WireName
	}
	return o.memberNaming(m.Name)
}
